// Package activity appends audit records as a side effect of mutations.
package activity

import (
	"context"
	"log"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/storage"
	"github.com/taskhub-dev/taskhub/internal/types"
)

// Recorder writes the append-only activity trail. A failed write is logged
// and swallowed: the audit feed is observational and must never fail the
// mutation that triggered it.
type Recorder struct {
	store storage.Store
}

func NewRecorder(store storage.Store) *Recorder {
	return &Recorder{store: store}
}

func (r *Recorder) record(ctx context.Context, activity models.Activity) {
	if err := r.store.Activities().Create(ctx, &activity); err != nil {
		log.Printf("Failed to record activity %q %q: %v", activity.Type, activity.Action, err)
	}
}

func (r *Recorder) ProjectCreated(ctx context.Context, userID uint, project *models.Project) {
	r.record(ctx, models.Activity{
		Type:      types.ActivityTypeProject,
		Action:    "created",
		Title:     project.Name,
		UserID:    userID,
		ProjectID: &project.ID,
	})
}

func (r *Recorder) TaskCreated(ctx context.Context, userID uint, task *models.Task, project *models.Project) {
	r.record(ctx, models.Activity{
		Type:        types.ActivityTypeTask,
		Action:      "created",
		Title:       task.Title,
		Description: "Added to " + project.Name,
		UserID:      userID,
		ProjectID:   &project.ID,
		TaskID:      &task.ID,
	})
}

func (r *Recorder) CommentAdded(ctx context.Context, userID uint, task *models.Task) {
	r.record(ctx, models.Activity{
		Type:        types.ActivityTypeComment,
		Action:      "added",
		Title:       "New comment",
		Description: "On task: " + task.Title,
		UserID:      userID,
		ProjectID:   &task.ProjectID,
		TaskID:      &task.ID,
	})
}
