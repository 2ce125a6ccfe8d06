package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/activity"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/stats"
	"github.com/taskhub-dev/taskhub/internal/storage"
	"github.com/taskhub-dev/taskhub/internal/types"
	"github.com/taskhub-dev/taskhub/internal/utils"
)

type TaskHandler struct {
	store    storage.Store
	recorder *activity.Recorder
}

func NewTaskHandler(store storage.Store, recorder *activity.Recorder) *TaskHandler {
	return &TaskHandler{store: store, recorder: recorder}
}

type CreateTaskRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Project        *uint    `json:"project"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	Assignee       *uint    `json:"assignee"`
	DueDate        string   `json:"dueDate"`
	EstimatedHours *float64 `json:"estimatedHours"`
	ActualHours    *float64 `json:"actualHours"`
	Labels         []string `json:"labels"`
}

type UpdateTaskRequest struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Status         *string   `json:"status"`
	Priority       *string   `json:"priority"`
	Assignee       *uint     `json:"assignee"`
	DueDate        *string   `json:"dueDate"`
	EstimatedHours *float64  `json:"estimatedHours"`
	ActualHours    *float64  `json:"actualHours"`
	Labels         *[]string `json:"labels"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

func (h *TaskHandler) List(ctx *gin.Context) {
	filter := storage.TaskFilter{
		Status:   ctx.Query("status"),
		Priority: ctx.Query("priority"),
		Sort:     ctx.Query("sort"),
	}

	if project := ctx.Query("project"); project != "" {
		id, err := strconv.ParseUint(project, 10, 32)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid project filter")
			return
		}
		filter.ProjectID = uint(id)
	}

	if assignee := ctx.Query("assignee"); assignee != "" {
		id, err := strconv.ParseUint(assignee, 10, 32)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid assignee filter")
			return
		}
		filter.AssigneeID = uint(id)
	}

	if limit := ctx.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			respondError(ctx, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = n
	}

	tasks, err := h.store.Tasks().List(ctx.Request.Context(), filter)

	if err != nil {
		log.Printf("Failed to list tasks: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	resolver := newUserResolver(h.store)
	projectNames := make(map[uint]string)
	views := make([]TaskView, 0, len(tasks))

	for _, task := range tasks {
		name, ok := projectNames[task.ProjectID]
		if !ok {
			if project, err := h.store.Projects().GetByID(ctx.Request.Context(), task.ProjectID); err == nil {
				name = project.Name
			}
			projectNames[task.ProjectID] = name
		}
		views = append(views, resolver.taskView(ctx.Request.Context(), task, name))
	}

	respondList(ctx, len(views), views)
}

func (h *TaskHandler) Get(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		respondError(ctx, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.store.Tasks().GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, "Task not found")
		} else {
			log.Printf("Failed to get task %d: %v", id, err)
			respondError(ctx, http.StatusInternalServerError, "Server error")
		}
		return
	}

	detail := TaskDetail{Task: *task}

	if project, err := h.store.Projects().GetByID(ctx.Request.Context(), task.ProjectID); err == nil {
		detail.ProjectName = project.Name
		detail.ProjectCategory = project.Category
		detail.ProjectStatus = project.Status
	}

	resolver := newUserResolver(h.store)
	detail.ReporterName = resolver.name(ctx.Request.Context(), task.ReporterID)
	if task.AssigneeID != nil {
		detail.AssigneeName = resolver.name(ctx.Request.Context(), *task.AssigneeID)
	}
	detail.Comments = resolver.commentViews(ctx.Request.Context(), task.Comments)

	respondOK(ctx, detail)
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateCreateTask(&req); len(errs) > 0 {
		respondValidation(ctx, errs)
		return
	}

	project, err := h.store.Projects().GetByID(ctx.Request.Context(), *req.Project)

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, "Project not found")
		} else {
			log.Printf("Failed to get project %d: %v", *req.Project, err)
			respondError(ctx, http.StatusInternalServerError, "Server error")
		}
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	dueDate, _ := utils.ParseDate(req.DueDate)

	task := models.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ProjectID:   project.ID,
		Status:      defaultString(req.Status, types.TaskStatusTodo),
		Priority:    defaultString(req.Priority, types.PriorityMedium),
		AssigneeID:  req.Assignee,
		ReporterID:  currentUser.ID,
		DueDate:     dueDate,
	}

	if req.EstimatedHours != nil {
		task.EstimatedHours = *req.EstimatedHours
	}
	if req.ActualHours != nil {
		task.ActualHours = *req.ActualHours
	}
	if len(req.Labels) > 0 {
		task.Labels = marshalJSON(req.Labels)
	}

	if err := h.store.Tasks().Create(ctx.Request.Context(), &task); err != nil {
		log.Printf("Failed to create task: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	h.refreshProjectProgress(ctx.Request.Context(), project.ID)
	h.recorder.TaskCreated(ctx.Request.Context(), currentUser.ID, &task, project)

	respondCreated(ctx, task)
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		respondError(ctx, http.StatusNotFound, "Task not found")
		return
	}

	var req UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.store.Tasks().GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, "Task not found")
		} else {
			log.Printf("Failed to get task %d: %v", id, err)
			respondError(ctx, http.StatusInternalServerError, "Server error")
		}
		return
	}

	wasCompleted := task.Status == types.TaskStatusCompleted

	errs := applyTaskUpdate(task, &req)

	if len(errs) > 0 {
		respondValidation(ctx, errs)
		return
	}

	// completedAt marks the transition into completed, not completion
	// itself: later completed->completed updates leave it untouched.
	if !wasCompleted && task.Status == types.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := h.store.Tasks().Update(ctx.Request.Context(), task); err != nil {
		log.Printf("Failed to update task %d: %v", id, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	h.refreshProjectProgress(ctx.Request.Context(), task.ProjectID)

	respondOK(ctx, task)
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		respondError(ctx, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.store.Tasks().GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, "Task not found")
		} else {
			log.Printf("Failed to get task %d: %v", id, err)
			respondError(ctx, http.StatusInternalServerError, "Server error")
		}
		return
	}

	if err := h.store.Tasks().Delete(ctx.Request.Context(), id); err != nil {
		log.Printf("Failed to delete task %d: %v", id, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	h.refreshProjectProgress(ctx.Request.Context(), task.ProjectID)

	respondMessage(ctx, "Task deleted successfully")
}

func (h *TaskHandler) Overview(ctx *gin.Context) {
	tasks, err := h.store.Tasks().ListAll(ctx.Request.Context())

	if err != nil {
		log.Printf("Failed to list tasks: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	respondOK(ctx, stats.ForOverview(tasks, time.Now()))
}

func (h *TaskHandler) AddComment(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		respondError(ctx, http.StatusNotFound, "Task not found")
		return
	}

	var req AddCommentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		respondValidation(ctx, []FieldError{{Field: "content", Message: "Comment content is required"}})
		return
	}

	task, err := h.store.Tasks().GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, "Task not found")
		} else {
			log.Printf("Failed to get task %d: %v", id, err)
			respondError(ctx, http.StatusInternalServerError, "Server error")
		}
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	comment := models.Comment{
		TaskID:  task.ID,
		UserID:  currentUser.ID,
		Content: strings.TrimSpace(req.Content),
	}

	if err := h.store.Tasks().AddComment(ctx.Request.Context(), &comment); err != nil {
		log.Printf("Failed to add comment to task %d: %v", id, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	h.recorder.CommentAdded(ctx.Request.Context(), currentUser.ID, task)

	respondOK(ctx, comment)
}

// refreshProjectProgress recomputes and persists the parent project's
// derived progress. There is no transaction around the task mutation and
// this write: two interleaved mutations can leave a stale value, which is
// an accepted inconsistency window (last write wins).
func (h *TaskHandler) refreshProjectProgress(ctx context.Context, projectID uint) {
	tasks, err := h.store.Tasks().ListByProject(ctx, projectID)

	if err != nil {
		log.Printf("Failed to list tasks for progress recompute on project %d: %v", projectID, err)
		return
	}

	err = h.store.Projects().UpdateProgress(ctx, projectID, stats.Progress(tasks))

	// The project may have been deleted between the two reads.
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("Failed to update progress for project %d: %v", projectID, err)
	}
}

func validateCreateTask(req *CreateTaskRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Task title is required"})
	} else if len(req.Title) > 200 {
		errs = append(errs, FieldError{Field: "title", Message: "Task title cannot exceed 200 characters"})
	}

	if len(req.Description) > 1000 {
		errs = append(errs, FieldError{Field: "description", Message: "Description cannot exceed 1000 characters"})
	}

	if req.Project == nil || *req.Project == 0 {
		errs = append(errs, FieldError{Field: "project", Message: "Project is required"})
	}

	if strings.TrimSpace(req.DueDate) == "" {
		errs = append(errs, FieldError{Field: "dueDate", Message: "Due date is required"})
	} else if _, err := utils.ParseDate(req.DueDate); err != nil {
		errs = append(errs, FieldError{Field: "dueDate", Message: err.Error()})
	}

	if req.Status != "" && !types.ValidTaskStatus(req.Status) {
		errs = append(errs, FieldError{Field: "status", Message: "Invalid status"})
	}

	if req.Priority != "" && !types.ValidTaskPriority(req.Priority) {
		errs = append(errs, FieldError{Field: "priority", Message: "Invalid priority"})
	}

	if req.EstimatedHours != nil && *req.EstimatedHours < 0 {
		errs = append(errs, FieldError{Field: "estimatedHours", Message: "Estimated hours cannot be negative"})
	}

	if req.ActualHours != nil && *req.ActualHours < 0 {
		errs = append(errs, FieldError{Field: "actualHours", Message: "Actual hours cannot be negative"})
	}

	return errs
}

func applyTaskUpdate(task *models.Task, req *UpdateTaskRequest) []FieldError {
	var errs []FieldError

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		switch {
		case title == "":
			errs = append(errs, FieldError{Field: "title", Message: "Task title is required"})
		case len(title) > 200:
			errs = append(errs, FieldError{Field: "title", Message: "Task title cannot exceed 200 characters"})
		default:
			task.Title = title
		}
	}

	if req.Description != nil {
		if len(*req.Description) > 1000 {
			errs = append(errs, FieldError{Field: "description", Message: "Description cannot exceed 1000 characters"})
		} else {
			task.Description = strings.TrimSpace(*req.Description)
		}
	}

	if req.Status != nil {
		if !types.ValidTaskStatus(*req.Status) {
			errs = append(errs, FieldError{Field: "status", Message: "Invalid status"})
		} else {
			task.Status = *req.Status
		}
	}

	if req.Priority != nil {
		if !types.ValidTaskPriority(*req.Priority) {
			errs = append(errs, FieldError{Field: "priority", Message: "Invalid priority"})
		} else {
			task.Priority = *req.Priority
		}
	}

	if req.Assignee != nil {
		task.AssigneeID = req.Assignee
	}

	if req.DueDate != nil {
		if dueDate, err := utils.ParseDate(*req.DueDate); err != nil {
			errs = append(errs, FieldError{Field: "dueDate", Message: err.Error()})
		} else {
			task.DueDate = dueDate
		}
	}

	if req.EstimatedHours != nil {
		if *req.EstimatedHours < 0 {
			errs = append(errs, FieldError{Field: "estimatedHours", Message: "Estimated hours cannot be negative"})
		} else {
			task.EstimatedHours = *req.EstimatedHours
		}
	}

	if req.ActualHours != nil {
		if *req.ActualHours < 0 {
			errs = append(errs, FieldError{Field: "actualHours", Message: "Actual hours cannot be negative"})
		} else {
			task.ActualHours = *req.ActualHours
		}
	}

	if req.Labels != nil {
		task.Labels = marshalJSON(*req.Labels)
	}

	return errs
}
