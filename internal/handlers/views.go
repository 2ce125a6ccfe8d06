package handlers

import (
	"context"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/storage"
)

// Read-side projections. Related records are fetched explicitly and
// attached as display fields rather than resolved lazily.

type TaskView struct {
	models.Task
	ProjectName  string `json:"projectName,omitempty"`
	AssigneeName string `json:"assigneeName,omitempty"`
	ReporterName string `json:"reporterName,omitempty"`
}

type CommentView struct {
	models.Comment
	UserName string `json:"userName,omitempty"`
}

type TaskDetail struct {
	models.Task
	ProjectName     string        `json:"projectName,omitempty"`
	ProjectCategory string        `json:"projectCategory,omitempty"`
	ProjectStatus   string        `json:"projectStatus,omitempty"`
	AssigneeName    string        `json:"assigneeName,omitempty"`
	ReporterName    string        `json:"reporterName,omitempty"`
	Comments        []CommentView `json:"comments"`
}

// userResolver caches user lookups while building one response.
type userResolver struct {
	store storage.Store
	cache map[uint]string
}

func newUserResolver(store storage.Store) *userResolver {
	return &userResolver{store: store, cache: make(map[uint]string)}
}

func (r *userResolver) name(ctx context.Context, id uint) string {
	if id == 0 {
		return ""
	}
	if name, ok := r.cache[id]; ok {
		return name
	}

	name := ""
	if user, err := r.store.Users().GetByID(ctx, id); err == nil {
		name = user.FullName()
	}
	r.cache[id] = name
	return name
}

func (r *userResolver) taskView(ctx context.Context, task models.Task, projectName string) TaskView {
	view := TaskView{
		Task:         task,
		ProjectName:  projectName,
		ReporterName: r.name(ctx, task.ReporterID),
	}
	if task.AssigneeID != nil {
		view.AssigneeName = r.name(ctx, *task.AssigneeID)
	}
	return view
}

func (r *userResolver) taskViews(ctx context.Context, tasks []models.Task, projectName string) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, r.taskView(ctx, task, projectName))
	}
	return views
}

func (r *userResolver) commentViews(ctx context.Context, comments []models.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, CommentView{
			Comment:  comment,
			UserName: r.name(ctx, comment.UserID),
		})
	}
	return views
}
