package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (*models.User, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return nil, fmt.Errorf("no user in request context")
	}

	currentUser, ok := user.(*models.User)

	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}

	return currentUser, nil
}
