package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GetIDParam parses the ":id" path parameter as a record identifier.
func GetIDParam(ctx *gin.Context) (uint, error) {
	idStr := ctx.Param("id")

	if idStr == "" {
		return 0, errors.New("missing id parameter")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("invalid id parameter")
	}

	return uint(id), nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps and plain dates, the two formats
// clients actually send.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date, expected YYYY-MM-DD or RFC 3339")
}
