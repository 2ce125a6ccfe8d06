package dashboard

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/stats"
	"github.com/taskhub-dev/taskhub/internal/types"
	"github.com/taskhub-dev/taskhub/internal/utils"
)

// ProjectDraft is the payload for creating a project, remote or local.
type ProjectDraft struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Status      string  `json:"status,omitempty"`
	StartDate   string  `json:"startDate"`
	Deadline    string  `json:"deadline"`
	Budget      float64 `json:"budget,omitempty"`
}

// TaskDraft is the payload for creating a task.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Project     uint   `json:"project"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Assignee    *uint  `json:"assignee,omitempty"`
	DueDate     string `json:"dueDate"`
}

// TaskPatch is a partial task update.
type TaskPatch struct {
	Title    *string `json:"title,omitempty"`
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
	DueDate  *string `json:"dueDate,omitempty"`
}

var errTaskNotMirrored = errors.New("task not present in local mirror")

// Deadline is a derived calendar entry; it is never fetched, always
// recomputed from the mirrored projects and tasks.
type Deadline struct {
	Kind     string    `json:"kind"` // "task" or "project"
	Title    string    `json:"title"`
	Project  string    `json:"project,omitempty"`
	Date     time.Time `json:"date"`
	Assignee string    `json:"assignee,omitempty"`
	Priority string    `json:"priority,omitempty"`
	Category string    `json:"category,omitempty"`
	Status   string    `json:"status,omitempty"`
}

// Mirror holds the local copy of the API state. All methods are meant to be
// called from a single UI goroutine; the mirror does no locking of its own.
type Mirror struct {
	User       *models.User
	Projects   []models.Project
	Tasks      []models.Task
	Activities []models.Activity
	Deadlines  []Deadline

	client *Client
	// pending tags offline-created records (local numeric id -> uuid) so a
	// later sync can tell them apart from server-assigned records.
	pending map[uint]string
}

func NewMirror(client *Client) *Mirror {
	return &Mirror{
		client:  client,
		pending: make(map[uint]string),
	}
}

// Load fetches every collection from the API. Each collection falls back to
// the built-in demo dataset independently: a failed or empty projects fetch
// does not stop tasks or the profile from loading.
func (m *Mirror) Load(ctx context.Context) {
	now := time.Now()

	if projects, err := m.client.Projects(ctx); err == nil && len(projects) > 0 {
		m.Projects = projects
	} else {
		m.Projects = DemoProjects(now)
	}

	if tasks, err := m.client.Tasks(ctx); err == nil && len(tasks) > 0 {
		m.Tasks = tasks
	} else {
		m.Tasks = DemoTasks(now)
	}

	if profile, err := m.client.Profile(ctx); err == nil {
		m.User = &profile.User
	} else {
		m.User = DemoUser()
	}

	if activities, err := m.client.Activities(ctx); err == nil && len(activities) > 0 {
		m.Activities = activities
	} else {
		m.Activities = DemoActivities(now)
	}

	m.rebuildDeadlines()
}

// CreateProject tries the API first and mirrors the result; when the API is
// unavailable it applies the mutation locally so the UI never blocks.
// Returns true when the local path was taken.
func (m *Mirror) CreateProject(ctx context.Context, draft ProjectDraft) (bool, error) {
	if _, err := m.client.CreateProject(ctx, draft); err == nil {
		if projects, err := m.client.Projects(ctx); err == nil {
			m.Projects = projects
		}
		m.rebuildDeadlines()
		return false, nil
	}

	startDate, err := utils.ParseDate(draft.StartDate)
	if err != nil {
		return false, err
	}
	deadline, err := utils.ParseDate(draft.Deadline)
	if err != nil {
		return false, err
	}

	project := models.Project{
		Name:        draft.Name,
		Description: draft.Description,
		Category:    orDefault(draft.Category, "other"),
		Status:      orDefault(draft.Status, types.ProjectStatusPlanning),
		StartDate:   startDate,
		Deadline:    deadline,
		Budget:      draft.Budget,
		Currency:    "USD",
	}
	project.ID = m.nextLocalID()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	if m.User != nil {
		project.OwnerID = m.User.ID
	}

	m.pending[project.ID] = uuid.NewString()
	m.Projects = append([]models.Project{project}, m.Projects...)
	m.rebuildDeadlines()
	return true, nil
}

// CreateTask follows the same optimistic-fallback pattern as CreateProject.
func (m *Mirror) CreateTask(ctx context.Context, draft TaskDraft) (bool, error) {
	if _, err := m.client.CreateTask(ctx, draft); err == nil {
		if tasks, err := m.client.Tasks(ctx); err == nil {
			m.Tasks = tasks
		}
		m.rebuildDeadlines()
		return false, nil
	}

	dueDate, err := utils.ParseDate(draft.DueDate)
	if err != nil {
		return false, err
	}

	task := models.Task{
		Title:       draft.Title,
		Description: draft.Description,
		ProjectID:   draft.Project,
		Status:      orDefault(draft.Status, types.TaskStatusTodo),
		Priority:    orDefault(draft.Priority, types.PriorityMedium),
		AssigneeID:  draft.Assignee,
		DueDate:     dueDate,
	}
	task.ID = m.nextLocalID()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	if m.User != nil {
		task.ReporterID = m.User.ID
	}

	m.pending[task.ID] = uuid.NewString()
	m.Tasks = append(m.Tasks, task)
	m.refreshLocalProgress(task.ProjectID)
	m.rebuildDeadlines()
	return true, nil
}

// UpdateTask tries the API and falls back to patching the mirrored task,
// applying the same completedAt transition rule the server does.
func (m *Mirror) UpdateTask(ctx context.Context, id uint, patch TaskPatch) (bool, error) {
	if _, err := m.client.UpdateTask(ctx, id, patch); err == nil {
		if tasks, err := m.client.Tasks(ctx); err == nil {
			m.Tasks = tasks
		}
		m.rebuildDeadlines()
		return false, nil
	}

	for i := range m.Tasks {
		if m.Tasks[i].ID != id {
			continue
		}

		task := &m.Tasks[i]
		wasCompleted := task.Status == types.TaskStatusCompleted

		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Status != nil {
			task.Status = *patch.Status
		}
		if patch.Priority != nil {
			task.Priority = *patch.Priority
		}
		if patch.DueDate != nil {
			if dueDate, err := utils.ParseDate(*patch.DueDate); err == nil {
				task.DueDate = dueDate
			}
		}

		if !wasCompleted && task.Status == types.TaskStatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
		}
		task.UpdatedAt = time.Now()

		m.refreshLocalProgress(task.ProjectID)
		m.rebuildDeadlines()
		return true, nil
	}

	return true, errTaskNotMirrored
}

// Stats re-derives the overview from the mirrored tasks with the same
// function the server uses.
func (m *Mirror) Stats() stats.Overview {
	return stats.ForOverview(m.Tasks, time.Now())
}

// ProjectProgress re-derives one project's completion percentage locally.
func (m *Mirror) ProjectProgress(projectID uint) int {
	return stats.Progress(m.projectTasks(projectID))
}

// PendingCount reports how many mirrored records only exist locally.
func (m *Mirror) PendingCount() int {
	return len(m.pending)
}

func (m *Mirror) projectTasks(projectID uint) []models.Task {
	var tasks []models.Task
	for _, task := range m.Tasks {
		if task.ProjectID == projectID {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

func (m *Mirror) refreshLocalProgress(projectID uint) {
	for i := range m.Projects {
		if m.Projects[i].ID == projectID {
			m.Projects[i].Progress = stats.Progress(m.projectTasks(projectID))
			return
		}
	}
}

func (m *Mirror) projectName(projectID uint) string {
	for _, project := range m.Projects {
		if project.ID == projectID {
			return project.Name
		}
	}
	return ""
}

func (m *Mirror) rebuildDeadlines() {
	deadlines := make([]Deadline, 0, len(m.Tasks)+len(m.Projects))

	for _, task := range m.Tasks {
		entry := Deadline{
			Kind:     "task",
			Title:    task.Title,
			Project:  m.projectName(task.ProjectID),
			Date:     task.DueDate,
			Priority: task.Priority,
		}
		if task.AssigneeID != nil && m.User != nil && *task.AssigneeID == m.User.ID {
			entry.Assignee = m.User.FullName()
		}
		deadlines = append(deadlines, entry)
	}

	for _, project := range m.Projects {
		deadlines = append(deadlines, Deadline{
			Kind:     "project",
			Title:    project.Name,
			Date:     project.Deadline,
			Category: project.Category,
			Status:   project.Status,
		})
	}

	sort.Slice(deadlines, func(i, j int) bool {
		return deadlines[i].Date.Before(deadlines[j].Date)
	})

	m.Deadlines = deadlines
}

// nextLocalID picks an id above everything mirrored so far.
func (m *Mirror) nextLocalID() uint {
	var max uint
	for _, project := range m.Projects {
		if project.ID > max {
			max = project.ID
		}
	}
	for _, task := range m.Tasks {
		if task.ID > max {
			max = task.ID
		}
	}
	return max + 1
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
