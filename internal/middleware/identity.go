package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/types"
)

// Identity attaches the demo user to every request. No authentication
// header is consulted: this deployment substitutes a constant actor
// wherever one is required.
func Identity(demoUser *models.User) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, demoUser)
		ctx.Next()
	}
}
