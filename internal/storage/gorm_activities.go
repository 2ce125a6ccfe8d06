package storage

import (
	"context"

	"github.com/taskhub-dev/taskhub/internal/models"
	"gorm.io/gorm"
)

type gormActivities struct {
	db *gorm.DB
}

func (r *gormActivities) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *gormActivities) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}
