package handlers

import (
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/stats"
	"github.com/taskhub-dev/taskhub/internal/storage"
	"github.com/taskhub-dev/taskhub/internal/utils"
)

type UserHandler struct {
	store storage.Store
}

func NewUserHandler(store storage.Store) *UserHandler {
	return &UserHandler{store: store}
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Phone     string `json:"phone"`
}

type ProfileResponse struct {
	models.User
	Stats stats.UserStats `json:"stats"`
}

func (h *UserHandler) userStats(ctx *gin.Context, userID uint) (stats.UserStats, bool) {
	tasks, err := h.store.Tasks().ListForUser(ctx.Request.Context(), userID)

	if err != nil {
		log.Printf("Failed to list tasks for user %d: %v", userID, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return stats.UserStats{}, false
	}

	projects, err := h.store.Projects().ListForUser(ctx.Request.Context(), userID)

	if err != nil {
		log.Printf("Failed to list projects for user %d: %v", userID, err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return stats.UserStats{}, false
	}

	return stats.ForUser(tasks, projects, time.Now()), true
}

func (h *UserHandler) Profile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	userStats, ok := h.userStats(ctx, currentUser.ID)

	if !ok {
		return
	}

	respondOK(ctx, ProfileResponse{User: *currentUser, Stats: userStats})
}

// UpdateProfile merges the payload onto the demo profile and echoes the
// result. The demo identity has no backing row to persist beyond the
// request, so the merge lives only in the response.
func (h *UserHandler) UpdateProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	var req UpdateProfileRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateUpdateProfile(&req); len(errs) > 0 {
		respondValidation(ctx, errs)
		return
	}

	updated := *currentUser
	updated.FirstName = strings.TrimSpace(req.FirstName)
	updated.LastName = strings.TrimSpace(req.LastName)
	updated.Email = strings.ToLower(strings.TrimSpace(req.Email))
	updated.Bio = req.Bio
	updated.Company = req.Company
	updated.Position = req.Position
	updated.Phone = req.Phone

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"data":    updated,
	})
}

func (h *UserHandler) Activities(ctx *gin.Context) {
	activities, err := h.store.Activities().ListRecent(ctx.Request.Context(), 20)

	if err != nil {
		log.Printf("Failed to list activities: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	respondList(ctx, len(activities), activities)
}

func (h *UserHandler) Stats(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	userStats, ok := h.userStats(ctx, currentUser.ID)

	if !ok {
		return
	}

	respondOK(ctx, userStats)
}

func validateUpdateProfile(req *UpdateProfileRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.FirstName) == "" {
		errs = append(errs, FieldError{Field: "firstName", Message: "First name is required"})
	}

	if strings.TrimSpace(req.LastName) == "" {
		errs = append(errs, FieldError{Field: "lastName", Message: "Last name is required"})
	}

	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		errs = append(errs, FieldError{Field: "email", Message: "Please include a valid email"})
	}

	return errs
}
