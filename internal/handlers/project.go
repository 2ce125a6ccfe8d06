package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/taskhub-dev/taskhub/internal/activity"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/stats"
	"github.com/taskhub-dev/taskhub/internal/storage"
	"github.com/taskhub-dev/taskhub/internal/types"
	"github.com/taskhub-dev/taskhub/internal/utils"
)

type ProjectHandler struct {
	store    storage.Store
	recorder *activity.Recorder
}

func NewProjectHandler(store storage.Store, recorder *activity.Recorder) *ProjectHandler {
	return &ProjectHandler{store: store, recorder: recorder}
}

type CreateProjectRequest struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Category    string                  `json:"category"`
	Status      string                  `json:"status"`
	StartDate   string                  `json:"startDate"`
	Deadline    string                  `json:"deadline"`
	Budget      *float64                `json:"budget"`
	Currency    string                  `json:"currency"`
	Client      *models.ClientContact   `json:"client"`
	Tags        []string                `json:"tags"`
	Settings    *models.ProjectSettings `json:"settings"`
}

type UpdateProjectRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Category    *string                 `json:"category"`
	Status      *string                 `json:"status"`
	Progress    *int                    `json:"progress"`
	StartDate   *string                 `json:"startDate"`
	Deadline    *string                 `json:"deadline"`
	Budget      *float64                `json:"budget"`
	Currency    *string                 `json:"currency"`
	Client      *models.ClientContact   `json:"client"`
	Tags        *[]string               `json:"tags"`
	Settings    *models.ProjectSettings `json:"settings"`
}

// ProjectListItem decorates a project with its derived task aggregates.
type ProjectListItem struct {
	models.Project
	CalculatedProgress int `json:"calculatedProgress"`
	TaskCount          int `json:"taskCount"`
}

type ProjectDetail struct {
	models.Project
	CalculatedProgress int           `json:"calculatedProgress"`
	OwnerName          string        `json:"ownerName,omitempty"`
	Tasks              []TaskView    `json:"tasks"`
	Stats              stats.Summary `json:"stats"`
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	projects, err := h.store.Projects().List(ctx.Request.Context())

	if err != nil {
		log.Printf("Failed to list projects: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	items := make([]ProjectListItem, 0, len(projects))

	for _, project := range projects {
		tasks, err := h.store.Tasks().ListByProject(ctx.Request.Context(), project.ID)

		if err != nil {
			log.Printf("Failed to list tasks for project %d: %v", project.ID, err)
			respondError(ctx, http.StatusInternalServerError, "Server error")
			return
		}

		items = append(items, ProjectListItem{
			Project:            project,
			CalculatedProgress: stats.Progress(tasks),
			TaskCount:          len(tasks),
		})
	}

	respondList(ctx, len(items), items)
}

func (h *ProjectHandler) Get(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		respondError(ctx, http.StatusNotFound, "Project not found")
		return
	}

	project, err := h.store.Projects().GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, "Project not found")
		} else {
			log.Printf("Failed to get project %d: %v", id, err)
			respondError(ctx, http.StatusInternalServerError, "Server error")
		}
		return
	}

	tasks, err := h.store.Tasks().ListByProject(ctx.Request.Context(), id)

	if err != nil {
		log.Printf("Failed to list tasks for project %d: %v", id, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	resolver := newUserResolver(h.store)

	respondOK(ctx, ProjectDetail{
		Project:            *project,
		CalculatedProgress: stats.Progress(tasks),
		OwnerName:          resolver.name(ctx.Request.Context(), project.OwnerID),
		Tasks:              resolver.taskViews(ctx.Request.Context(), tasks, project.Name),
		Stats:              stats.Summarize(tasks),
	})
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateCreateProject(&req); len(errs) > 0 {
		respondValidation(ctx, errs)
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	startDate, _ := utils.ParseDate(req.StartDate)
	deadline, _ := utils.ParseDate(req.Deadline)

	project := models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    defaultString(req.Category, "other"),
		Status:      defaultString(req.Status, types.ProjectStatusPlanning),
		StartDate:   startDate,
		Deadline:    deadline,
		Currency:    defaultString(req.Currency, "USD"),
		OwnerID:     currentUser.ID,
		Team: []models.TeamMember{
			{UserID: currentUser.ID, Role: types.TeamRoleLead, JoinedAt: time.Now()},
		},
		Settings: models.ProjectSettings{AllowComments: true},
	}

	if req.Budget != nil {
		project.Budget = *req.Budget
	}
	if req.Client != nil {
		project.Client = *req.Client
	}
	if req.Settings != nil {
		project.Settings = *req.Settings
	}
	if len(req.Tags) > 0 {
		project.Tags = marshalJSON(req.Tags)
	}

	if err := h.store.Projects().Create(ctx.Request.Context(), &project); err != nil {
		log.Printf("Failed to create project: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	h.recorder.ProjectCreated(ctx.Request.Context(), currentUser.ID, &project)

	respondCreated(ctx, project)
}

func (h *ProjectHandler) Update(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		respondError(ctx, http.StatusNotFound, "Project not found")
		return
	}

	var req UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.store.Projects().GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, "Project not found")
		} else {
			log.Printf("Failed to get project %d: %v", id, err)
			respondError(ctx, http.StatusInternalServerError, "Server error")
		}
		return
	}

	errs := applyProjectUpdate(project, &req)

	if len(errs) > 0 {
		respondValidation(ctx, errs)
		return
	}

	if err := h.store.Projects().Update(ctx.Request.Context(), project); err != nil {
		log.Printf("Failed to update project %d: %v", id, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	respondOK(ctx, project)
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		respondError(ctx, http.StatusNotFound, "Project not found")
		return
	}

	if _, err := h.store.Projects().GetByID(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, "Project not found")
		} else {
			log.Printf("Failed to get project %d: %v", id, err)
			respondError(ctx, http.StatusInternalServerError, "Server error")
		}
		return
	}

	// Tasks belong exclusively to their project: removing the project
	// removes them too.
	if err := h.store.Tasks().DeleteByProject(ctx.Request.Context(), id); err != nil {
		log.Printf("Failed to delete tasks for project %d: %v", id, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.store.Projects().Delete(ctx.Request.Context(), id); err != nil {
		log.Printf("Failed to delete project %d: %v", id, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	respondMessage(ctx, "Project deleted successfully")
}

func (h *ProjectHandler) Tasks(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		respondError(ctx, http.StatusNotFound, "Project not found")
		return
	}

	tasks, err := h.store.Tasks().ListByProject(ctx.Request.Context(), id)

	if err != nil {
		log.Printf("Failed to list tasks for project %d: %v", id, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	projectName := ""
	if project, err := h.store.Projects().GetByID(ctx.Request.Context(), id); err == nil {
		projectName = project.Name
	}

	resolver := newUserResolver(h.store)
	views := resolver.taskViews(ctx.Request.Context(), tasks, projectName)

	respondList(ctx, len(views), views)
}

func (h *ProjectHandler) Stats(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		respondError(ctx, http.StatusNotFound, "Project not found")
		return
	}

	tasks, err := h.store.Tasks().ListByProject(ctx.Request.Context(), id)

	if err != nil {
		log.Printf("Failed to list tasks for project %d: %v", id, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	respondOK(ctx, stats.ForProject(tasks, time.Now()))
}

func validateCreateProject(req *CreateProjectRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Project name is required"})
	} else if len(req.Name) > 100 {
		errs = append(errs, FieldError{Field: "name", Message: "Project name cannot exceed 100 characters"})
	}

	if len(req.Description) > 500 {
		errs = append(errs, FieldError{Field: "description", Message: "Description cannot exceed 500 characters"})
	}

	if strings.TrimSpace(req.StartDate) == "" {
		errs = append(errs, FieldError{Field: "startDate", Message: "Start date is required"})
	} else if _, err := utils.ParseDate(req.StartDate); err != nil {
		errs = append(errs, FieldError{Field: "startDate", Message: err.Error()})
	}

	if strings.TrimSpace(req.Deadline) == "" {
		errs = append(errs, FieldError{Field: "deadline", Message: "Deadline is required"})
	} else if _, err := utils.ParseDate(req.Deadline); err != nil {
		errs = append(errs, FieldError{Field: "deadline", Message: err.Error()})
	}

	if req.Category != "" && !types.ValidProjectCategory(req.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "Invalid category"})
	}

	if req.Status != "" && !types.ValidProjectStatus(req.Status) {
		errs = append(errs, FieldError{Field: "status", Message: "Invalid status"})
	}

	if req.Budget != nil && *req.Budget < 0 {
		errs = append(errs, FieldError{Field: "budget", Message: "Budget cannot be negative"})
	}

	return errs
}

// applyProjectUpdate merges the provided fields onto the project,
// validating each one that is present.
func applyProjectUpdate(project *models.Project, req *UpdateProjectRequest) []FieldError {
	var errs []FieldError

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		switch {
		case name == "":
			errs = append(errs, FieldError{Field: "name", Message: "Project name is required"})
		case len(name) > 100:
			errs = append(errs, FieldError{Field: "name", Message: "Project name cannot exceed 100 characters"})
		default:
			project.Name = name
		}
	}

	if req.Description != nil {
		if len(*req.Description) > 500 {
			errs = append(errs, FieldError{Field: "description", Message: "Description cannot exceed 500 characters"})
		} else {
			project.Description = strings.TrimSpace(*req.Description)
		}
	}

	if req.Category != nil {
		if !types.ValidProjectCategory(*req.Category) {
			errs = append(errs, FieldError{Field: "category", Message: "Invalid category"})
		} else {
			project.Category = *req.Category
		}
	}

	if req.Status != nil {
		if !types.ValidProjectStatus(*req.Status) {
			errs = append(errs, FieldError{Field: "status", Message: "Invalid status"})
		} else {
			project.Status = *req.Status
		}
	}

	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			errs = append(errs, FieldError{Field: "progress", Message: "Progress must be between 0 and 100"})
		} else {
			project.Progress = *req.Progress
		}
	}

	if req.StartDate != nil {
		if startDate, err := utils.ParseDate(*req.StartDate); err != nil {
			errs = append(errs, FieldError{Field: "startDate", Message: err.Error()})
		} else {
			project.StartDate = startDate
		}
	}

	if req.Deadline != nil {
		if deadline, err := utils.ParseDate(*req.Deadline); err != nil {
			errs = append(errs, FieldError{Field: "deadline", Message: err.Error()})
		} else {
			project.Deadline = deadline
		}
	}

	if req.Budget != nil {
		if *req.Budget < 0 {
			errs = append(errs, FieldError{Field: "budget", Message: "Budget cannot be negative"})
		} else {
			project.Budget = *req.Budget
		}
	}

	if req.Currency != nil {
		project.Currency = *req.Currency
	}

	if req.Client != nil {
		project.Client = *req.Client
	}

	if req.Tags != nil {
		project.Tags = marshalJSON(*req.Tags)
	}

	if req.Settings != nil {
		project.Settings = *req.Settings
	}

	return errs
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func marshalJSON(value any) datatypes.JSON {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
