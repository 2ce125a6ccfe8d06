package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Project field enums
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on-hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusReview     = "review"
	TaskStatusCompleted  = "completed"
	TaskStatusBlocked    = "blocked"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

const (
	TeamRoleMember      = "member"
	TeamRoleLead        = "lead"
	TeamRoleContributor = "contributor"
)

const (
	ActivityTypeProject   = "project"
	ActivityTypeTask      = "task"
	ActivityTypeComment   = "comment"
	ActivityTypeMilestone = "milestone"
	ActivityTypeMeeting   = "meeting"
	ActivityTypeFile      = "file"
	ActivityTypeUser      = "user"
)

var (
	ProjectCategories = []string{"web", "mobile", "marketing", "hr", "design", "development", "other"}
	ProjectStatuses   = []string{ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled}
	TaskStatuses      = []string{TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted, TaskStatusBlocked}
	TaskPriorities    = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	TeamRoles         = []string{TeamRoleMember, TeamRoleLead, TeamRoleContributor}
	ActivityTypes     = []string{ActivityTypeProject, ActivityTypeTask, ActivityTypeComment, ActivityTypeMilestone, ActivityTypeMeeting, ActivityTypeFile, ActivityTypeUser}
)

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func ValidProjectCategory(v string) bool { return contains(ProjectCategories, v) }
func ValidProjectStatus(v string) bool   { return contains(ProjectStatuses, v) }
func ValidTaskStatus(v string) bool      { return contains(TaskStatuses, v) }
func ValidTaskPriority(v string) bool    { return contains(TaskPriorities, v) }
func ValidTeamRole(v string) bool        { return contains(TeamRoles, v) }
func ValidActivityType(v string) bool    { return contains(ActivityTypes, v) }

// Demo identity substituted everywhere an actor is required.
// There is no real authentication in this deployment.
const (
	DemoUserEmail     = "demo@taskhub.dev"
	DemoUserFirstName = "Demo"
	DemoUserLastName  = "Manager"
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
