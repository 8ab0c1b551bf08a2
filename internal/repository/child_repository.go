package repository

import (
	"brightsprout_backend/internal/model"

	"gorm.io/gorm"
)

type ChildRepository struct {
	DB *gorm.DB
}

func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{DB: db}
}

func (r *ChildRepository) Create(child *model.Child) error {
	return r.DB.Create(child).Error
}

func (r *ChildRepository) FindByUID(uid string) (*model.Child, error) {
	var child model.Child
	err := r.DB.Where("id = ?", uid).First(&child).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *ChildRepository) FindByUsername(username string) (*model.Child, error) {
	var child model.Child
	err := r.DB.Where("username = ?", username).First(&child).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *ChildRepository) ListByParent(parentID uint) ([]model.Child, error) {
	var children []model.Child
	err := r.DB.Where("parent_id = ?", parentID).
		Order("created_at asc").Find(&children).Error
	return children, err
}

func (r *ChildRepository) UpdatePassword(uid string, hashedPassword string) error {
	return r.DB.Model(&model.Child{}).Where("id = ?", uid).
		Update("password", hashedPassword).Error
}
