package storage

import (
	"context"

	"github.com/taskhub-dev/taskhub/internal/models"
	"gorm.io/gorm"
)

type gormTasks struct {
	db *gorm.DB
}

func (r *gormTasks) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Attachments").
		Preload("Comments").
		Preload("Subtasks")
}

func (r *gormTasks) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *gormTasks) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.preloaded(ctx).First(&task, id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *gormTasks) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *gormTasks) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormTasks) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := r.preloaded(ctx)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.ProjectID != 0 {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.AssigneeID != 0 {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}

	switch filter.Sort {
	case "priority":
		query = query.Order("CASE priority WHEN 'urgent' THEN 3 WHEN 'high' THEN 2 WHEN 'medium' THEN 1 ELSE 0 END DESC")
	case "created":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("due_date ASC")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultTaskLimit
	}

	var tasks []models.Task
	if err := query.Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormTasks) ListAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormTasks) ListByProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.preloaded(ctx).
		Where("project_id = ?", projectID).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormTasks) DeleteByProject(ctx context.Context, projectID uint) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&models.Task{}).Error
}

func (r *gormTasks) ListForUser(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.preloaded(ctx).
		Where("assignee_id = ? OR reporter_id = ?", userID, userID).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormTasks) AddComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}
