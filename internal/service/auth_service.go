package service

import (
	"context"
	"errors"

	"brightsprout_backend/internal/config"
	"brightsprout_backend/internal/model"
	"brightsprout_backend/internal/repository"
	"brightsprout_backend/internal/util"
	"brightsprout_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Email    *EmailService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, email *EmailService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Email:    email,
		Cfg:      cfg,
	}
}

// Register creates a parent account and kicks off the welcome email.
// The email is best-effort; registration never fails on it.
func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.Role = model.RoleParent

	if err := s.UserRepo.Create(user); err != nil {
		return err
	}

	if s.Email != nil {
		go func(email, name string) {
			if err := s.Email.SendWelcomeEmail(context.Background(), email, name); err != nil {
				logger.Log.Warn("welcome email failed", zap.String("email", email), zap.Error(err))
			}
		}(user.Email, user.Name)
	}

	return nil
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}
