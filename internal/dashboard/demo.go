package dashboard

import (
	"time"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/types"
)

// Built-in demo dataset used when the API is unreachable or empty. IDs are
// deliberately high so they do not collide with server-assigned ones after
// a partial load.

const demoIDBase = 9000

func DemoUser() *models.User {
	user := &models.User{
		FirstName: types.DemoUserFirstName,
		LastName:  types.DemoUserLastName,
		Email:     types.DemoUserEmail,
		Role:      "admin",
		Avatar:    "DM",
		Bio:       "Experienced project manager with expertise in web development projects.",
		Company:   "TaskHub Inc.",
		Position:  "Project Manager",
	}
	user.ID = demoIDBase
	return user
}

func DemoProjects(now time.Time) []models.Project {
	entries := []struct {
		name        string
		category    string
		description string
		status      string
		progress    int
		startOffset int // days relative to now
		deadline    int
		budget      float64
	}{
		{"Website Redesign", "web", "Complete overhaul of company website with modern design and improved UX", types.ProjectStatusActive, 75, -30, 30, 15000},
		{"Mobile App Development", "mobile", "Build cross-platform mobile application for iOS and Android", types.ProjectStatusPlanning, 20, -10, 60, 25000},
		{"Marketing Campaign Q3", "marketing", "Social media and email marketing campaign for Q3 products", types.ProjectStatusActive, 45, -15, 45, 8000},
		{"Internal Training Portal", "hr", "Development of employee training and onboarding portal", types.ProjectStatusOnHold, 30, -20, 90, 12000},
	}

	projects := make([]models.Project, 0, len(entries))
	for i, e := range entries {
		project := models.Project{
			Name:        e.name,
			Category:    e.category,
			Description: e.description,
			Status:      e.status,
			Progress:    e.progress,
			StartDate:   now.AddDate(0, 0, e.startOffset),
			Deadline:    now.AddDate(0, 0, e.deadline),
			Budget:      e.budget,
			Currency:    "USD",
			OwnerID:     demoIDBase,
		}
		project.ID = uint(demoIDBase + 1 + i)
		project.CreatedAt = now.AddDate(0, 0, e.startOffset)
		project.UpdatedAt = project.CreatedAt
		projects = append(projects, project)
	}
	return projects
}

func DemoTasks(now time.Time) []models.Task {
	demoAssignee := uint(demoIDBase)

	entries := []struct {
		title       string
		description string
		status      string
		priority    string
		project     int // index into DemoProjects
		due         int // days relative to now
		assigned    bool
	}{
		{"Design Homepage Layout", "Create wireframes and mockups for new homepage design", types.TaskStatusTodo, types.PriorityHigh, 0, 2, true},
		{"API Integration", "Integrate payment gateway API for checkout system", types.TaskStatusInProgress, types.PriorityHigh, 0, 5, false},
		{"Write Documentation", "Document API endpoints and usage guidelines", types.TaskStatusTodo, types.PriorityMedium, 1, 7, false},
		{"Set Up Analytics", "Configure tracking for the campaign landing pages", types.TaskStatusReview, types.PriorityLow, 2, 10, true},
		{"Content Migration", "Move legacy articles to the new CMS", types.TaskStatusCompleted, types.PriorityMedium, 0, -3, false},
	}

	tasks := make([]models.Task, 0, len(entries))
	for i, e := range entries {
		task := models.Task{
			Title:       e.title,
			Description: e.description,
			Status:      e.status,
			Priority:    e.priority,
			ProjectID:   uint(demoIDBase + 1 + e.project),
			ReporterID:  demoIDBase,
			DueDate:     now.AddDate(0, 0, e.due),
		}
		if e.assigned {
			task.AssigneeID = &demoAssignee
		}
		if e.status == types.TaskStatusCompleted {
			completedAt := now.AddDate(0, 0, -1)
			task.CompletedAt = &completedAt
		}
		task.ID = uint(demoIDBase + 100 + i)
		task.CreatedAt = now.AddDate(0, 0, -7)
		task.UpdatedAt = task.CreatedAt
		tasks = append(tasks, task)
	}
	return tasks
}

func DemoActivities(now time.Time) []models.Activity {
	entries := []struct {
		activityType string
		action       string
		title        string
		hoursAgo     int
	}{
		{types.ActivityTypeProject, "created", "Website Redesign", 2},
		{types.ActivityTypeTask, "completed", "Homepage wireframe", 5},
		{types.ActivityTypeComment, "added", "Mobile App project", 24},
		{types.ActivityTypeMilestone, "reached", "Project Alpha", 48},
		{types.ActivityTypeMeeting, "scheduled", "Sprint Planning", 72},
	}

	activities := make([]models.Activity, 0, len(entries))
	for i, e := range entries {
		activity := models.Activity{
			Type:   e.activityType,
			Action: e.action,
			Title:  e.title,
			UserID: demoIDBase,
		}
		activity.ID = uint(demoIDBase + 200 + i)
		activity.CreatedAt = now.Add(-time.Duration(e.hoursAgo) * time.Hour)
		activity.UpdatedAt = activity.CreatedAt
		activities = append(activities, activity)
	}
	return activities
}
