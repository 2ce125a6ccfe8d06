package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/router"
	"github.com/taskhub-dev/taskhub/internal/storage"
	"github.com/taskhub-dev/taskhub/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []fieldError    `json:"errors"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newTestServer(t *testing.T) (*gin.Engine, *storage.MemoryStore, *models.User) {
	t.Helper()

	store := storage.NewMemoryStore()

	demo := &models.User{
		FirstName: types.DemoUserFirstName,
		LastName:  types.DemoUserLastName,
		Email:     types.DemoUserEmail,
		Role:      "admin",
	}

	if err := store.Users().Create(context.Background(), demo); err != nil {
		t.Fatalf("failed to seed demo user: %v", err)
	}

	return router.New(store, demo), store, demo
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	payload := bytes.NewReader(nil)

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
		}
	}

	return w, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()

	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("failed to decode data %q: %v", string(env.Data), err)
	}
}

func hasFieldError(errs []fieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// createProject posts a minimal valid project and returns the created record.
func createProject(t *testing.T, r http.Handler, name string, overrides map[string]any) models.Project {
	t.Helper()

	body := map[string]any{
		"name":      name,
		"startDate": "2026-08-01",
		"deadline":  "2026-12-01",
	}
	for k, v := range overrides {
		body[k] = v
	}

	w, env := doRequest(t, r, http.MethodPost, "/api/projects", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create project returned %d: %s", w.Code, w.Body.String())
	}

	var project models.Project
	decodeData(t, env, &project)
	return project
}

// createTask posts a minimal valid task into the given project.
func createTask(t *testing.T, r http.Handler, projectID uint, title string, overrides map[string]any) models.Task {
	t.Helper()

	body := map[string]any{
		"title":   title,
		"project": projectID,
		"dueDate": "2026-11-01",
	}
	for k, v := range overrides {
		body[k] = v
	}

	w, env := doRequest(t, r, http.MethodPost, "/api/tasks", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create task returned %d: %s", w.Code, w.Body.String())
	}

	var task models.Task
	decodeData(t, env, &task)
	return task
}
