package storage

import (
	"context"

	"github.com/taskhub-dev/taskhub/internal/models"
	"gorm.io/gorm"
)

type gormProjects struct {
	db *gorm.DB
}

func (r *gormProjects) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *gormProjects) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Preload("Team").First(&project, id).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *gormProjects) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *gormProjects) UpdateProgress(ctx context.Context, id uint, progress int) error {
	tx := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Update("progress", progress)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormProjects) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormProjects) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Preload("Team").Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *gormProjects) ListForUser(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Distinct("projects.*").
		Joins("LEFT JOIN team_members ON team_members.project_id = projects.id AND team_members.deleted_at IS NULL").
		Where("projects.owner_id = ? OR team_members.user_id = ?", userID, userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
