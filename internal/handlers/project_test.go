package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/stats"
	"github.com/taskhub-dev/taskhub/internal/types"
)

func TestCreateProjectValidation(t *testing.T) {
	r, _, _ := newTestServer(t)

	w, env := doRequest(t, r, http.MethodPost, "/api/projects", map[string]any{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env.Success {
		t.Error("expected success=false")
	}
	for _, field := range []string{"name", "startDate", "deadline"} {
		if !hasFieldError(env.Errors, field) {
			t.Errorf("expected a validation error for %q, got %+v", field, env.Errors)
		}
	}
}

func TestCreateProjectInvalidEnums(t *testing.T) {
	r, _, _ := newTestServer(t)

	w, env := doRequest(t, r, http.MethodPost, "/api/projects", map[string]any{
		"name":      "Bad enums",
		"startDate": "2026-08-01",
		"deadline":  "2026-12-01",
		"category":  "astrology",
		"status":    "almost-done",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !hasFieldError(env.Errors, "category") || !hasFieldError(env.Errors, "status") {
		t.Errorf("expected category and status errors, got %+v", env.Errors)
	}
}

func TestCreateProjectDefaults(t *testing.T) {
	r, _, demo := newTestServer(t)

	project := createProject(t, r, "Launch", nil)

	if project.ID == 0 {
		t.Fatal("expected a generated id")
	}
	if project.Status != types.ProjectStatusPlanning {
		t.Errorf("Status = %q, want planning", project.Status)
	}
	if project.Category != "other" {
		t.Errorf("Category = %q, want other", project.Category)
	}
	if project.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", project.Currency)
	}
	if project.OwnerID != demo.ID {
		t.Errorf("OwnerID = %d, want demo user %d", project.OwnerID, demo.ID)
	}
	if len(project.Team) != 1 || project.Team[0].UserID != demo.ID || project.Team[0].Role != types.TeamRoleLead {
		t.Errorf("expected the demo user seeded as team lead, got %+v", project.Team)
	}
}

func TestCreateProjectRecordsActivity(t *testing.T) {
	r, _, demo := newTestServer(t)

	createProject(t, r, "Launch", nil)

	_, env := doRequest(t, r, http.MethodGet, "/api/users/activities", nil)

	var activities []models.Activity
	decodeData(t, env, &activities)

	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}
	a := activities[0]
	if a.Type != types.ActivityTypeProject || a.Action != "created" || a.Title != "Launch" {
		t.Errorf("unexpected activity: %+v", a)
	}
	if a.UserID != demo.ID {
		t.Errorf("activity UserID = %d, want %d", a.UserID, demo.ID)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	r, _, _ := newTestServer(t)

	for _, path := range []string{"/api/projects/999", "/api/projects/abc"} {
		w, env := doRequest(t, r, http.MethodGet, path, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, w.Code)
		}
		if env.Message != "Project not found" {
			t.Errorf("GET %s message = %q", path, env.Message)
		}
	}
}

func TestProjectListAggregates(t *testing.T) {
	r, _, _ := newTestServer(t)

	project := createProject(t, r, "Launch", nil)
	createTask(t, r, project.ID, "Wireframes", map[string]any{"status": "completed"})
	createTask(t, r, project.ID, "Build", nil)
	createTask(t, r, project.ID, "Ship", nil)

	_, env := doRequest(t, r, http.MethodGet, "/api/projects", nil)

	var items []struct {
		models.Project
		CalculatedProgress int `json:"calculatedProgress"`
		TaskCount          int `json:"taskCount"`
	}
	decodeData(t, env, &items)

	if env.Count != 1 || len(items) != 1 {
		t.Fatalf("expected 1 project, got count=%d len=%d", env.Count, len(items))
	}
	if items[0].TaskCount != 3 {
		t.Errorf("TaskCount = %d, want 3", items[0].TaskCount)
	}
	if items[0].CalculatedProgress != 33 {
		t.Errorf("CalculatedProgress = %d, want 33", items[0].CalculatedProgress)
	}
}

func TestProjectListNewestFirst(t *testing.T) {
	r, _, _ := newTestServer(t)

	createProject(t, r, "First", nil)
	createProject(t, r, "Second", nil)

	_, env := doRequest(t, r, http.MethodGet, "/api/projects", nil)

	var items []models.Project
	decodeData(t, env, &items)

	if len(items) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(items))
	}
	if items[0].Name != "Second" {
		t.Errorf("expected newest project first, got %q", items[0].Name)
	}
}

func TestProjectDetail(t *testing.T) {
	r, _, _ := newTestServer(t)

	project := createProject(t, r, "Launch", nil)
	createTask(t, r, project.ID, "Later", map[string]any{"dueDate": "2026-11-20"})
	createTask(t, r, project.ID, "Sooner", map[string]any{"dueDate": "2026-09-05", "status": "completed"})

	_, env := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil)

	var detail struct {
		models.Project
		CalculatedProgress int           `json:"calculatedProgress"`
		OwnerName          string        `json:"ownerName"`
		Tasks              []models.Task `json:"tasks"`
		Stats              stats.Summary `json:"stats"`
	}
	decodeData(t, env, &detail)

	if detail.OwnerName != "Demo Manager" {
		t.Errorf("OwnerName = %q, want Demo Manager", detail.OwnerName)
	}
	if len(detail.Tasks) != 2 || detail.Tasks[0].Title != "Sooner" {
		t.Errorf("expected tasks ordered by due date, got %+v", detail.Tasks)
	}
	if detail.CalculatedProgress != 50 {
		t.Errorf("CalculatedProgress = %d, want 50", detail.CalculatedProgress)
	}
	want := stats.Summary{TotalTasks: 2, CompletedTasks: 1, Todo: 1}
	if detail.Stats != want {
		t.Errorf("Stats = %+v, want %+v", detail.Stats, want)
	}
}

func TestUpdateProjectPartial(t *testing.T) {
	r, _, _ := newTestServer(t)

	project := createProject(t, r, "Launch", nil)
	path := fmt.Sprintf("/api/projects/%d", project.ID)

	w, env := doRequest(t, r, http.MethodPut, path, map[string]any{"status": types.ProjectStatusActive})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var updated models.Project
	decodeData(t, env, &updated)

	if updated.Status != types.ProjectStatusActive {
		t.Errorf("Status = %q, want active", updated.Status)
	}
	if updated.Name != "Launch" {
		t.Errorf("Name changed unexpectedly to %q", updated.Name)
	}
}

func TestUpdateProjectValidatesPresentFields(t *testing.T) {
	r, _, _ := newTestServer(t)

	project := createProject(t, r, "Launch", nil)
	path := fmt.Sprintf("/api/projects/%d", project.ID)

	w, env := doRequest(t, r, http.MethodPut, path, map[string]any{"progress": 150})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !hasFieldError(env.Errors, "progress") {
		t.Errorf("expected progress error, got %+v", env.Errors)
	}

	// The failed update must not have modified the record.
	_, env = doRequest(t, r, http.MethodGet, path, nil)
	var detail models.Project
	decodeData(t, env, &detail)
	if detail.Progress != 0 {
		t.Errorf("Progress = %d after rejected update, want 0", detail.Progress)
	}
}

func TestUpdateProjectNotFound(t *testing.T) {
	r, _, _ := newTestServer(t)

	w, env := doRequest(t, r, http.MethodPut, "/api/projects/999", map[string]any{"name": "Ghost"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if env.Message != "Project not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestDeleteProjectCascadesTasks(t *testing.T) {
	r, _, _ := newTestServer(t)

	project := createProject(t, r, "Launch", nil)
	createTask(t, r, project.ID, "One", nil)
	createTask(t, r, project.ID, "Two", nil)

	w, env := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if env.Message != "Project deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}

	w, _ = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("project still reachable after delete, status = %d", w.Code)
	}

	_, env = doRequest(t, r, http.MethodGet, "/api/tasks", nil)
	if env.Count != 0 {
		t.Errorf("expected no tasks after cascade, got %d", env.Count)
	}
}

func TestDeleteProjectNotFound(t *testing.T) {
	r, _, _ := newTestServer(t)

	w, _ := doRequest(t, r, http.MethodDelete, "/api/projects/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestProjectStats(t *testing.T) {
	r, _, _ := newTestServer(t)

	project := createProject(t, r, "Launch", nil)
	createTask(t, r, project.ID, "Done", map[string]any{"status": "completed", "priority": "high"})
	createTask(t, r, project.ID, "Late", map[string]any{"dueDate": "2020-01-01", "priority": "urgent"})
	createTask(t, r, project.ID, "Open", nil)

	_, env := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/stats", project.ID), nil)

	var got stats.ProjectStats
	decodeData(t, env, &got)

	if got.TotalTasks != 3 || got.CompletedTasks != 1 || got.TodoTasks != 2 {
		t.Errorf("unexpected breakdown: %+v", got)
	}
	if got.HighPriority != 2 {
		t.Errorf("HighPriority = %d, want 2", got.HighPriority)
	}
	if got.OverdueTasks != 1 {
		t.Errorf("OverdueTasks = %d, want 1", got.OverdueTasks)
	}
	if got.Progress != 33 {
		t.Errorf("Progress = %d, want 33", got.Progress)
	}
}

func TestProjectTasksEndpoint(t *testing.T) {
	r, _, _ := newTestServer(t)

	project := createProject(t, r, "Launch", nil)
	other := createProject(t, r, "Other", nil)
	createTask(t, r, project.ID, "Mine", nil)
	createTask(t, r, other.ID, "Theirs", nil)

	_, env := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks", project.ID), nil)

	var views []struct {
		models.Task
		ProjectName string `json:"projectName"`
	}
	decodeData(t, env, &views)

	if env.Count != 1 || len(views) != 1 {
		t.Fatalf("expected 1 task, got count=%d", env.Count)
	}
	if views[0].Title != "Mine" || views[0].ProjectName != "Launch" {
		t.Errorf("unexpected view: %+v", views[0])
	}
}
