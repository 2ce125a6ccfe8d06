package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/router"
	"github.com/taskhub-dev/taskhub/internal/storage"
	"github.com/taskhub-dev/taskhub/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// deadServerURL returns a base URL that refuses connections.
func deadServerURL(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	return url
}

// liveAPI spins up the real router over an in-memory store.
func liveAPI(t *testing.T) (*httptest.Server, storage.Store, *models.User) {
	t.Helper()

	store := storage.NewMemoryStore()
	demo := &models.User{
		FirstName: types.DemoUserFirstName,
		LastName:  types.DemoUserLastName,
		Email:     types.DemoUserEmail,
	}
	if err := store.Users().Create(context.Background(), demo); err != nil {
		t.Fatalf("failed to seed demo user: %v", err)
	}

	ts := httptest.NewServer(router.New(store, demo))
	t.Cleanup(ts.Close)
	return ts, store, demo
}

func TestLoadFromAPI(t *testing.T) {
	ts, store, demo := liveAPI(t)
	ctx := context.Background()

	project := models.Project{
		Name:      "Remote Launch",
		OwnerID:   demo.ID,
		Status:    types.ProjectStatusActive,
		StartDate: time.Now(),
		Deadline:  time.Now().AddDate(0, 0, 30),
	}
	if err := store.Projects().Create(ctx, &project); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	task := models.Task{
		Title:      "Remote task",
		ProjectID:  project.ID,
		Status:     types.TaskStatusTodo,
		Priority:   types.PriorityMedium,
		ReporterID: demo.ID,
		DueDate:    time.Now().AddDate(0, 0, 5),
	}
	if err := store.Tasks().Create(ctx, &task); err != nil {
		t.Fatalf("seed task: %v", err)
	}

	m := NewMirror(NewClient(ts.URL))
	m.Load(ctx)

	if len(m.Projects) != 1 || m.Projects[0].Name != "Remote Launch" {
		t.Errorf("expected the remote project, got %+v", m.Projects)
	}
	if len(m.Tasks) != 1 || m.Tasks[0].Title != "Remote task" {
		t.Errorf("expected the remote task, got %+v", m.Tasks)
	}
	if m.User == nil || m.User.Email != types.DemoUserEmail {
		t.Errorf("expected the demo profile, got %+v", m.User)
	}

	// No activities were recorded server-side, so that collection alone
	// falls back to the built-in dataset.
	if len(m.Activities) != 5 {
		t.Errorf("expected demo activities, got %d", len(m.Activities))
	}
}

func TestLoadFallsBackPerCollection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"count":1,"data":[{"id":1,"name":"Remote","status":"active","startDate":"2026-08-01T00:00:00Z","deadline":"2026-12-01T00:00:00Z"}]}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"down"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	m := NewMirror(NewClient(ts.URL))
	m.Load(context.Background())

	if len(m.Projects) != 1 || m.Projects[0].Name != "Remote" {
		t.Errorf("projects should come from the API, got %+v", m.Projects)
	}
	if len(m.Tasks) != 5 {
		t.Errorf("tasks should fall back to the demo set, got %d", len(m.Tasks))
	}
	if m.User == nil || m.User.Email != types.DemoUserEmail {
		t.Errorf("profile should fall back to the demo identity, got %+v", m.User)
	}
	if len(m.Activities) != 5 {
		t.Errorf("activities should fall back to the demo set, got %d", len(m.Activities))
	}
}

func TestLoadEmptyCollectionFallsBack(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"count":0,"data":[]}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	m := NewMirror(NewClient(ts.URL))
	m.Load(context.Background())

	if len(m.Projects) != 4 {
		t.Errorf("an empty projects response should fall back to demo data, got %d", len(m.Projects))
	}
	if len(m.Tasks) != 5 {
		t.Errorf("an empty tasks response should fall back to demo data, got %d", len(m.Tasks))
	}
}

func TestCreateProjectOffline(t *testing.T) {
	m := NewMirror(NewClient(deadServerURL(t)))
	m.Load(context.Background())

	before := len(m.Projects)

	offline, err := m.CreateProject(context.Background(), ProjectDraft{
		Name:      "Offline Project",
		StartDate: "2026-09-01",
		Deadline:  "2026-12-01",
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if !offline {
		t.Fatal("expected the local path with the API down")
	}

	if len(m.Projects) != before+1 || m.Projects[0].Name != "Offline Project" {
		t.Errorf("expected the new project mirrored first, got %+v", m.Projects[0])
	}
	if m.Projects[0].OwnerID != m.User.ID {
		t.Errorf("OwnerID = %d, want mirror user %d", m.Projects[0].OwnerID, m.User.ID)
	}
	if m.PendingCount() != 1 {
		t.Errorf("PendingCount = %d, want 1", m.PendingCount())
	}

	found := false
	for _, d := range m.Deadlines {
		if d.Kind == "project" && d.Title == "Offline Project" {
			found = true
		}
	}
	if !found {
		t.Error("new project missing from the deadline feed")
	}
}

func TestCreateProjectOfflineBadDate(t *testing.T) {
	m := NewMirror(NewClient(deadServerURL(t)))
	m.Load(context.Background())

	if _, err := m.CreateProject(context.Background(), ProjectDraft{
		Name:      "Bad",
		StartDate: "not a date",
		Deadline:  "2026-12-01",
	}); err == nil {
		t.Fatal("expected a date parse error")
	}
}

func TestCreateTaskOfflineRecomputesProgress(t *testing.T) {
	m := NewMirror(NewClient(deadServerURL(t)))
	m.Load(context.Background())

	projectID := m.Projects[0].ID

	offline, err := m.CreateTask(context.Background(), TaskDraft{
		Title:   "Offline done",
		Project: projectID,
		Status:  types.TaskStatusCompleted,
		DueDate: "2026-09-10",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if !offline {
		t.Fatal("expected the local path with the API down")
	}

	// The demo project starts with one completed task of three; adding a
	// second completed one makes it two of four.
	if got := projectProgressOf(t, m, projectID); got != 50 {
		t.Errorf("project progress = %d, want 50", got)
	}
	if got := m.ProjectProgress(projectID); got != 50 {
		t.Errorf("ProjectProgress() = %d, want 50", got)
	}
	if m.PendingCount() != 1 {
		t.Errorf("PendingCount = %d, want 1", m.PendingCount())
	}
}

func TestUpdateTaskOffline(t *testing.T) {
	m := NewMirror(NewClient(deadServerURL(t)))
	m.Load(context.Background())

	target := m.Tasks[0]
	if target.Status == types.TaskStatusCompleted {
		t.Fatalf("test expects an open task, got %+v", target)
	}

	status := types.TaskStatusCompleted
	offline, err := m.UpdateTask(context.Background(), target.ID, TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !offline {
		t.Fatal("expected the local path with the API down")
	}

	var updated *models.Task
	for i := range m.Tasks {
		if m.Tasks[i].ID == target.ID {
			updated = &m.Tasks[i]
		}
	}
	if updated == nil {
		t.Fatal("task vanished from the mirror")
	}
	if updated.Status != types.TaskStatusCompleted {
		t.Errorf("Status = %q, want completed", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Error("CompletedAt not set on transition into completed")
	}

	// Two of the project's three demo tasks are now completed.
	if got := projectProgressOf(t, m, target.ProjectID); got != 67 {
		t.Errorf("project progress = %d, want 67", got)
	}
}

func TestUpdateTaskNotMirrored(t *testing.T) {
	m := NewMirror(NewClient(deadServerURL(t)))
	m.Load(context.Background())

	title := "ghost"
	offline, err := m.UpdateTask(context.Background(), 1, TaskPatch{Title: &title})
	if !offline {
		t.Error("expected the local path with the API down")
	}
	if !errors.Is(err, errTaskNotMirrored) {
		t.Errorf("err = %v, want errTaskNotMirrored", err)
	}
}

func TestDeadlinesSortedAscending(t *testing.T) {
	m := NewMirror(NewClient(deadServerURL(t)))
	m.Load(context.Background())

	if len(m.Deadlines) != len(m.Tasks)+len(m.Projects) {
		t.Fatalf("len = %d, want %d", len(m.Deadlines), len(m.Tasks)+len(m.Projects))
	}
	for i := 1; i < len(m.Deadlines); i++ {
		if m.Deadlines[i].Date.Before(m.Deadlines[i-1].Date) {
			t.Fatalf("deadlines out of order at %d: %v before %v", i, m.Deadlines[i].Date, m.Deadlines[i-1].Date)
		}
	}
}

func TestMirrorStatsMatchesDemoData(t *testing.T) {
	m := NewMirror(NewClient(deadServerURL(t)))
	m.Load(context.Background())

	got := m.Stats()
	if got.TotalTasks != 5 || got.CompletedTasks != 1 {
		t.Errorf("unexpected overview from demo data: %+v", got)
	}
}

func TestCreateTaskRemote(t *testing.T) {
	ts, store, demo := liveAPI(t)
	ctx := context.Background()

	project := models.Project{
		Name:      "Remote Launch",
		OwnerID:   demo.ID,
		StartDate: time.Now(),
		Deadline:  time.Now().AddDate(0, 0, 30),
	}
	if err := store.Projects().Create(ctx, &project); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	m := NewMirror(NewClient(ts.URL))
	m.Load(ctx)

	offline, err := m.CreateTask(ctx, TaskDraft{
		Title:   "Synced task",
		Project: project.ID,
		DueDate: "2026-10-01",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if offline {
		t.Fatal("expected the remote path with the API up")
	}
	if m.PendingCount() != 0 {
		t.Errorf("PendingCount = %d, want 0 on the remote path", m.PendingCount())
	}

	found := false
	for _, task := range m.Tasks {
		if task.Title == "Synced task" {
			found = true
		}
	}
	if !found {
		t.Error("created task missing from the refetched mirror")
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Invalid limit"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	_, err := NewClient(ts.URL).Tasks(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Invalid limit") {
		t.Errorf("err = %v, want the API message surfaced", err)
	}
}

func projectProgressOf(t *testing.T, m *Mirror, id uint) int {
	t.Helper()
	for _, p := range m.Projects {
		if p.ID == id {
			return p.Progress
		}
	}
	t.Fatalf("project %d not mirrored", id)
	return 0
}
