package service

import (
	"errors"
	"fmt"

	"brightsprout_backend/internal/config"
	"brightsprout_backend/internal/model"
	"brightsprout_backend/internal/repository"
	"brightsprout_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ChildService manages learner profiles under a parent account.
// Children authenticate with a username instead of an email; the
// internal address derived from the username exists only to give the
// profile a credential slot of its own.
type ChildService struct {
	ChildRepo *repository.ChildRepository
	Cfg       *config.Config
}

func NewChildService(childRepo *repository.ChildRepository, cfg *config.Config) *ChildService {
	return &ChildService{
		ChildRepo: childRepo,
		Cfg:       cfg,
	}
}

type AddChildRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Age      int    `json:"age" binding:"required"`
	Grade    string `json:"grade" binding:"required"`
}

// InternalChildEmail derives the credential address for a child login.
func InternalChildEmail(username string) string {
	return fmt.Sprintf("%s.child@brightsprout.com", username)
}

func (s *ChildService) AddChild(caller *util.Claims, req AddChildRequest) (*model.Child, error) {
	if caller == nil || caller.Role != model.RoleParent {
		return nil, util.ErrUnauthenticated
	}

	_, err := s.ChildRepo.FindByUsername(req.Username)
	if err == nil {
		return nil, util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	child := &model.Child{
		Name:     req.Name,
		Age:      req.Age,
		Grade:    req.Grade,
		Username: req.Username,
		Password: string(hashedPassword),
		Avatar:   "person-circle-outline",
		ParentID: caller.UserID,
	}

	if err := s.ChildRepo.Create(child); err != nil {
		return nil, err
	}
	return child, nil
}

// LoginChild authenticates a child by username and issues a child-role
// token keyed by the profile.
func (s *ChildService) LoginChild(username, password string) (string, *model.Child, error) {
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: missing username or password", util.ErrInvalidArgument)
	}

	child, err := s.ChildRepo.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, util.ErrChildNotFound
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(child.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateChildJWT(child, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, child, nil
}

func (s *ChildService) ListChildren(caller *util.Claims) ([]model.Child, error) {
	if caller == nil || caller.Role != model.RoleParent {
		return nil, util.ErrUnauthenticated
	}
	return s.ChildRepo.ListByParent(caller.UserID)
}

// GetChild loads a child profile, enforcing that parents only see their
// own children and child callers only see themselves.
func (s *ChildService) GetChild(caller *util.Claims, childUID string) (*model.Child, error) {
	if caller == nil {
		return nil, util.ErrUnauthenticated
	}

	child, err := s.ChildRepo.FindByUID(childUID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChildNotFound
	}
	if err != nil {
		return nil, err
	}

	switch caller.Role {
	case model.RoleParent:
		if child.ParentID != caller.UserID {
			return nil, util.ErrPermissionDenied
		}
	case model.RoleChild:
		if child.ID != caller.ChildUID {
			return nil, util.ErrPermissionDenied
		}
	default:
		return nil, util.ErrPermissionDenied
	}

	return child, nil
}

type UpdateChildPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateChildPassword lets a parent rotate a child's password.
func (s *ChildService) UpdateChildPassword(caller *util.Claims, childUID, newPassword string) error {
	if caller == nil || caller.Role != model.RoleParent {
		return util.ErrUnauthenticated
	}

	child, err := s.ChildRepo.FindByUID(childUID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrChildNotFound
	}
	if err != nil {
		return err
	}
	if child.ParentID != caller.UserID {
		return util.ErrPermissionDenied
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.ChildRepo.UpdatePassword(childUID, string(hashedPassword))
}
