// Package stats holds the aggregate math shared by the API handlers and
// the dashboard mirror, so the two sides cannot drift apart.
package stats

import (
	"math"
	"time"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/types"
)

const upcomingWindow = 7 * 24 * time.Hour

// Summary is the per-project task breakdown attached to a project detail.
type Summary struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	InProgress     int `json:"inProgress"`
	Todo           int `json:"todo"`
}

// ProjectStats is the full breakdown served by GET /api/projects/:id/stats.
type ProjectStats struct {
	TotalTasks      int `json:"totalTasks"`
	CompletedTasks  int `json:"completedTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	TodoTasks       int `json:"todoTasks"`
	HighPriority    int `json:"highPriority"`
	OverdueTasks    int `json:"overdueTasks"`
	Progress        int `json:"progress"`
}

// PriorityBuckets folds high and urgent into a single "high" bucket.
type PriorityBuckets struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Overview is the global breakdown served by GET /api/tasks/stats/overview.
type Overview struct {
	TotalTasks      int             `json:"totalTasks"`
	CompletedTasks  int             `json:"completedTasks"`
	InProgressTasks int             `json:"inProgressTasks"`
	TodoTasks       int             `json:"todoTasks"`
	Priorities      PriorityBuckets `json:"priorities"`
	OverdueTasks    int             `json:"overdueTasks"`
	UpcomingTasks   int             `json:"upcomingTasks"`
}

// UserStats summarizes the work associated with one user.
type UserStats struct {
	TotalProjects  int `json:"totalProjects"`
	ActiveProjects int `json:"activeProjects"`
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	OverdueTasks   int `json:"overdueTasks"`
	UpcomingTasks  int `json:"upcomingTasks"`
	Productivity   int `json:"productivity"`
}

// Progress returns round(100 * completed / total), or 0 when there are no
// tasks. This is the single source of the derived project progress value.
func Progress(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == types.TaskStatusCompleted {
			completed++
		}
	}

	return int(math.Round(float64(completed) / float64(len(tasks)) * 100))
}

// IsOverdue reports whether a task is past due and not completed. Completed
// tasks are never overdue, however old their due date.
func IsOverdue(t models.Task, now time.Time) bool {
	return t.DueDate.Before(now) && t.Status != types.TaskStatusCompleted
}

// IsUpcoming reports whether an open task is due within the next seven days.
func IsUpcoming(t models.Task, now time.Time) bool {
	if t.Status == types.TaskStatusCompleted {
		return false
	}
	return !t.DueDate.Before(now) && !t.DueDate.After(now.Add(upcomingWindow))
}

// PriorityRank orders priorities for sorting: urgent > high > medium > low.
func PriorityRank(priority string) int {
	switch priority {
	case types.PriorityUrgent:
		return 3
	case types.PriorityHigh:
		return 2
	case types.PriorityMedium:
		return 1
	default:
		return 0
	}
}

func Summarize(tasks []models.Task) Summary {
	s := Summary{TotalTasks: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case types.TaskStatusCompleted:
			s.CompletedTasks++
		case types.TaskStatusInProgress:
			s.InProgress++
		case types.TaskStatusTodo:
			s.Todo++
		}
	}
	return s
}

func ForProject(tasks []models.Task, now time.Time) ProjectStats {
	s := ProjectStats{
		TotalTasks: len(tasks),
		Progress:   Progress(tasks),
	}

	for _, t := range tasks {
		switch t.Status {
		case types.TaskStatusCompleted:
			s.CompletedTasks++
		case types.TaskStatusInProgress:
			s.InProgressTasks++
		case types.TaskStatusTodo:
			s.TodoTasks++
		}

		if t.Priority == types.PriorityHigh || t.Priority == types.PriorityUrgent {
			s.HighPriority++
		}

		if IsOverdue(t, now) {
			s.OverdueTasks++
		}
	}

	return s
}

func ForOverview(tasks []models.Task, now time.Time) Overview {
	o := Overview{TotalTasks: len(tasks)}

	for _, t := range tasks {
		switch t.Status {
		case types.TaskStatusCompleted:
			o.CompletedTasks++
		case types.TaskStatusInProgress:
			o.InProgressTasks++
		case types.TaskStatusTodo:
			o.TodoTasks++
		}

		switch t.Priority {
		case types.PriorityHigh, types.PriorityUrgent:
			o.Priorities.High++
		case types.PriorityMedium:
			o.Priorities.Medium++
		case types.PriorityLow:
			o.Priorities.Low++
		}

		if IsOverdue(t, now) {
			o.OverdueTasks++
		}

		if IsUpcoming(t, now) {
			o.UpcomingTasks++
		}
	}

	return o
}

func ForUser(tasks []models.Task, projects []models.Project, now time.Time) UserStats {
	s := UserStats{
		TotalProjects: len(projects),
		TotalTasks:    len(tasks),
	}

	for _, p := range projects {
		if p.Status == types.ProjectStatusActive {
			s.ActiveProjects++
		}
	}

	for _, t := range tasks {
		if t.Status == types.TaskStatusCompleted {
			s.CompletedTasks++
		}
		if IsOverdue(t, now) {
			s.OverdueTasks++
		}
		if IsUpcoming(t, now) {
			s.UpcomingTasks++
		}
	}

	if len(tasks) > 0 {
		s.Productivity = int(math.Round(float64(s.CompletedTasks) / float64(len(tasks)) * 100))
	}

	return s
}
