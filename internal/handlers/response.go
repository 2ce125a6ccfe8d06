package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError names a request field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondOK(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondList(ctx *gin.Context, count int, data any) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondMessage(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": false, "message": message})
}

func respondValidation(ctx *gin.Context, errs []FieldError) {
	ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": errs})
}
