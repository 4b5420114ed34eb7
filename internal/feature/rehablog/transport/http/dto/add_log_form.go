// Package dto defines the validated form inputs for the rehablog transport layer.
package dto

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rehablog_backend/internal/feature/rehablog/usecase"
)

// Pain level bounds for a submitted entry.
const (
	minPainLevel = 1
	maxPainLevel = 10
)

// ParseAddLogForm extracts an AddLogInput from a submitted form.
// Each optional field is declared explicitly: a missing, malformed or
// out-of-range value drops that field rather than failing the request.
// Only the exercise name is required, and that rule is enforced by the
// usecase, not here.
func ParseAddLogForm(c *gin.Context) usecase.AddLogInput {
	return usecase.AddLogInput{
		Exercise:  strings.TrimSpace(c.PostForm("exercise")),
		Reps:      optionalInt(c.PostForm("reps"), 1, 0),
		Sets:      optionalInt(c.PostForm("sets"), 1, 0),
		PainLevel: optionalInt(c.PostForm("pain_level"), minPainLevel, maxPainLevel),
		Notes:     strings.TrimSpace(c.PostForm("notes")),
	}
}

// optionalInt parses an optional numeric field. It returns nil when the
// value is empty, not a number, below min, or above max (max 0 = unbounded).
func optionalInt(raw string, min, max int) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	if n < min {
		return nil
	}
	if max > 0 && n > max {
		return nil
	}
	return &n
}
