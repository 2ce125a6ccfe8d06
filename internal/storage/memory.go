package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taskhub-dev/taskhub/internal/models"
)

// MemoryStore is an in-memory Store. It backs the handler tests and the
// dashboard's offline tier; it is not meant for production use.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[uint]models.User
	projects   map[uint]models.Project
	tasks      map[uint]models.Task
	activities []models.Activity
	nextID     uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uint]models.User),
		projects: make(map[uint]models.Project),
		tasks:    make(map[uint]models.Task),
		nextID:   1,
	}
}

func (s *MemoryStore) Users() UserRepository          { return &memoryUsers{s} }
func (s *MemoryStore) Projects() ProjectRepository    { return &memoryProjects{s} }
func (s *MemoryStore) Tasks() TaskRepository          { return &memoryTasks{s} }
func (s *MemoryStore) Activities() ActivityRepository { return &memoryActivities{s} }

// allocate must be called with the write lock held.
func (s *MemoryStore) allocate() uint {
	id := s.nextID
	s.nextID++
	return id
}

func stamp(base *models.BaseModel, id uint) {
	now := time.Now()
	base.ID = id
	base.CreatedAt = now
	base.UpdatedAt = now
}

type memoryUsers struct {
	store *MemoryStore
}

func (r *memoryUsers) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stamp(&user.BaseModel, r.store.allocate())
	r.store.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

type memoryProjects struct {
	store *MemoryStore
}

func (r *memoryProjects) Create(ctx context.Context, project *models.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stamp(&project.BaseModel, r.store.allocate())
	for i := range project.Team {
		stamp(&project.Team[i].BaseModel, r.store.allocate())
		project.Team[i].ProjectID = project.ID
	}
	r.store.projects[project.ID] = *project
	return nil
}

func (r *memoryProjects) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	project, ok := r.store.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &project, nil
}

func (r *memoryProjects) Update(ctx context.Context, project *models.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.projects[project.ID]; !ok {
		return ErrNotFound
	}
	project.UpdatedAt = time.Now()
	r.store.projects[project.ID] = *project
	return nil
}

func (r *memoryProjects) UpdateProgress(ctx context.Context, id uint, progress int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	project, ok := r.store.projects[id]
	if !ok {
		return ErrNotFound
	}
	project.Progress = progress
	project.UpdatedAt = time.Now()
	r.store.projects[id] = project
	return nil
}

func (r *memoryProjects) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.projects[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.projects, id)
	return nil
}

func (r *memoryProjects) List(ctx context.Context) ([]models.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	projects := make([]models.Project, 0, len(r.store.projects))
	for _, project := range r.store.projects {
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].ID > projects[j].ID
		}
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (r *memoryProjects) ListForUser(ctx context.Context, userID uint) ([]models.Project, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(all))
	for _, project := range all {
		if project.OwnerID == userID {
			projects = append(projects, project)
			continue
		}
		for _, member := range project.Team {
			if member.UserID == userID {
				projects = append(projects, project)
				break
			}
		}
	}
	return projects, nil
}

type memoryTasks struct {
	store *MemoryStore
}

func (r *memoryTasks) Create(ctx context.Context, task *models.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stamp(&task.BaseModel, r.store.allocate())
	for i := range task.Comments {
		stamp(&task.Comments[i].BaseModel, r.store.allocate())
		task.Comments[i].TaskID = task.ID
	}
	for i := range task.Subtasks {
		stamp(&task.Subtasks[i].BaseModel, r.store.allocate())
		task.Subtasks[i].TaskID = task.ID
	}
	for i := range task.Attachments {
		stamp(&task.Attachments[i].BaseModel, r.store.allocate())
		task.Attachments[i].TaskID = task.ID
	}
	r.store.tasks[task.ID] = *task
	return nil
}

func (r *memoryTasks) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	task, ok := r.store.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &task, nil
}

func (r *memoryTasks) Update(ctx context.Context, task *models.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tasks[task.ID]; !ok {
		return ErrNotFound
	}
	task.UpdatedAt = time.Now()
	r.store.tasks[task.ID] = *task
	return nil
}

func (r *memoryTasks) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.tasks, id)
	return nil
}

func (r *memoryTasks) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tasks := make([]models.Task, 0, len(r.store.tasks))
	for _, task := range r.store.tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		if filter.ProjectID != 0 && task.ProjectID != filter.ProjectID {
			continue
		}
		if filter.AssigneeID != 0 && (task.AssigneeID == nil || *task.AssigneeID != filter.AssigneeID) {
			continue
		}
		tasks = append(tasks, task)
	}

	switch filter.Sort {
	case "priority":
		sort.Slice(tasks, func(i, j int) bool {
			return priorityRank(tasks[i].Priority) > priorityRank(tasks[j].Priority)
		})
	case "created":
		sort.Slice(tasks, func(i, j int) bool {
			if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
				return tasks[i].ID > tasks[j].ID
			}
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	default:
		sort.Slice(tasks, func(i, j int) bool {
			if tasks[i].DueDate.Equal(tasks[j].DueDate) {
				return tasks[i].ID < tasks[j].ID
			}
			return tasks[i].DueDate.Before(tasks[j].DueDate)
		})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultTaskLimit
	}
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (r *memoryTasks) ListAll(ctx context.Context) ([]models.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tasks := make([]models.Task, 0, len(r.store.tasks))
	for _, task := range r.store.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *memoryTasks) ListByProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, task := range r.store.tasks {
		if task.ProjectID == projectID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
	return tasks, nil
}

func (r *memoryTasks) DeleteByProject(ctx context.Context, projectID uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, task := range r.store.tasks {
		if task.ProjectID == projectID {
			delete(r.store.tasks, id)
		}
	}
	return nil
}

func (r *memoryTasks) ListForUser(ctx context.Context, userID uint) ([]models.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, task := range r.store.tasks {
		if task.ReporterID == userID || (task.AssigneeID != nil && *task.AssigneeID == userID) {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *memoryTasks) AddComment(ctx context.Context, comment *models.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task, ok := r.store.tasks[comment.TaskID]
	if !ok {
		return ErrNotFound
	}
	stamp(&comment.BaseModel, r.store.allocate())
	task.Comments = append(task.Comments, *comment)
	r.store.tasks[task.ID] = task
	return nil
}

type memoryActivities struct {
	store *MemoryStore
}

func (r *memoryActivities) Create(ctx context.Context, activity *models.Activity) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stamp(&activity.BaseModel, r.store.allocate())
	r.store.activities = append(r.store.activities, *activity)
	return nil
}

func (r *memoryActivities) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	activities := make([]models.Activity, len(r.store.activities))
	copy(activities, r.store.activities)
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].CreatedAt.Equal(activities[j].CreatedAt) {
			return activities[i].ID > activities[j].ID
		}
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// priorityRank mirrors the CASE ordering the SQL store uses.
func priorityRank(priority string) int {
	switch priority {
	case "urgent":
		return 3
	case "high":
		return 2
	case "medium":
		return 1
	default:
		return 0
	}
}
