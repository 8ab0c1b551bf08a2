package repository

import (
	"errors"
	"time"

	"brightsprout_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

// Save overwrites the child's stored path. The path is regenerated on
// every request so the row is an upsert keyed by child, not an append.
func (r *LearningPathRepository) Save(childUID string, payload string) error {
	var existing model.LearningPath
	err := r.DB.Where("child_uid = ?", childUID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(&model.LearningPath{
			ChildUID:    childUID,
			Payload:     payload,
			GeneratedAt: time.Now(),
		}).Error
	}
	if err != nil {
		return err
	}

	existing.Payload = payload
	existing.GeneratedAt = time.Now()
	return r.DB.Save(&existing).Error
}

func (r *LearningPathRepository) FindByChildUID(childUID string) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.Where("child_uid = ?", childUID).First(&path).Error
	if err != nil {
		return nil, err
	}
	return &path, nil
}
