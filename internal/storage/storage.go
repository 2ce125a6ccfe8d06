// Package storage provides the persistence interfaces and implementations.
package storage

import (
	"context"
	"errors"

	"github.com/taskhub-dev/taskhub/internal/models"
)

// ErrNotFound is returned when a referenced record does not resolve.
var ErrNotFound = errors.New("record not found")

// Store is the persistence capability injected into the API layer.
type Store interface {
	Users() UserRepository
	Projects() ProjectRepository
	Tasks() TaskRepository
	Activities() ActivityRepository
}

// TaskFilter narrows and orders task listings. Zero values mean "no filter".
type TaskFilter struct {
	Status     string
	Priority   string
	ProjectID  uint
	AssigneeID uint
	Sort       string // "" (due date asc), "priority" (rank desc), "created" (newest first)
	Limit      int    // 0 means the default cap of 100
}

// DefaultTaskLimit caps unbounded task listings.
const DefaultTaskLimit = 100

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	// UpdateProgress persists only the derived progress column.
	UpdateProgress(ctx context.Context, id uint, progress int) error
	Delete(ctx context.Context, id uint) error
	// List returns all projects, most recently created first.
	List(ctx context.Context) ([]models.Project, error)
	// ListForUser returns projects the user owns or is a team member of.
	ListForUser(ctx context.Context, userID uint) ([]models.Project, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)
	// ListAll returns every task, uncapped, for global aggregates.
	ListAll(ctx context.Context) ([]models.Task, error)
	// ListByProject returns a project's tasks ordered by ascending due date.
	ListByProject(ctx context.Context, projectID uint) ([]models.Task, error)
	// DeleteByProject removes every task belonging to the project.
	DeleteByProject(ctx context.Context, projectID uint) error
	// ListForUser returns tasks where the user is assignee or reporter.
	ListForUser(ctx context.Context, userID uint) ([]models.Task, error)
	AddComment(ctx context.Context, comment *models.Comment) error
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	// ListRecent returns the newest activities first, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]models.Activity, error)
}
