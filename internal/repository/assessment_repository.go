package repository

import (
	"context"
	"fmt"
	"time"

	"brightsprout_backend/internal/model"
	"brightsprout_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const assessmentCacheTTL = 24 * time.Hour

// AssessmentRepository persists generated question sets. MySQL is the
// source of truth; Redis fronts reads since the same stored set is
// served on every screen refresh for the lifetime of the child.
type AssessmentRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewAssessmentRepository(db *gorm.DB, rdb *redis.Client) *AssessmentRepository {
	return &AssessmentRepository{DB: db, Redis: rdb}
}

func cacheKey(childUID string, kind model.AssessmentKind) string {
	return fmt.Sprintf("assessment:%s:%s", childUID, kind)
}

func (r *AssessmentRepository) FindByChildUID(childUID string, kind model.AssessmentKind) (*model.Assessment, error) {
	ctx := context.Background()

	if r.Redis != nil {
		cached, err := r.Redis.Get(ctx, cacheKey(childUID, kind)).Result()
		if err == nil {
			return &model.Assessment{
				ChildUID:  childUID,
				Kind:      kind,
				Questions: cached,
			}, nil
		}
		if err != redis.Nil {
			logger.Log.Warn("assessment cache read failed", zap.Error(err))
		}
	}

	var assessment model.Assessment
	err := r.DB.Where("child_uid = ? AND kind = ?", childUID, kind).First(&assessment).Error
	if err != nil {
		return nil, err
	}

	if r.Redis != nil {
		if err := r.Redis.Set(ctx, cacheKey(childUID, kind), assessment.Questions, assessmentCacheTTL).Err(); err != nil {
			logger.Log.Warn("assessment cache write failed", zap.Error(err))
		}
	}

	return &assessment, nil
}

func (r *AssessmentRepository) Create(assessment *model.Assessment) error {
	if err := r.DB.Create(assessment).Error; err != nil {
		return err
	}

	if r.Redis != nil {
		key := cacheKey(assessment.ChildUID, assessment.Kind)
		if err := r.Redis.Set(context.Background(), key, assessment.Questions, assessmentCacheTTL).Err(); err != nil {
			logger.Log.Warn("assessment cache write failed", zap.Error(err))
		}
	}

	return nil
}
