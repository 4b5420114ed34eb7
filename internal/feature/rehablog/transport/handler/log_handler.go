// Package handler provides the HTTP handlers for the rehablog feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authentity "rehablog_backend/internal/feature/auth/domain/entity"
	rehabentity "rehablog_backend/internal/feature/rehablog/domain/entity"
	"rehablog_backend/internal/feature/rehablog/transport/http/dto"
	"rehablog_backend/internal/feature/rehablog/usecase"
	"rehablog_backend/internal/platform/token"
)

// LogUsecase defines the exercise-log operations used by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type LogUsecase interface {
	Add(ctx context.Context, ownerID uint, in usecase.AddLogInput) error
	ListByOwner(ctx context.Context, ownerID uint) ([]rehabentity.Log, error)
	Delete(ctx context.Context, ownerID uint, id uint) error
}

// LogHandler handles HTTP requests for exercise logs. All routes it serves
// sit behind the session guard, so a current user is always present.
type LogHandler struct {
	logs LogUsecase
}

// NewLogHandler creates a new instance of LogHandler.
func NewLogHandler(logs LogUsecase) *LogHandler {
	return &LogHandler{logs: logs}
}

// mustCurrentUser returns the guarded request's user. The guard guarantees
// it; a miss means the route was wired without the middleware.
func mustCurrentUser(c *gin.Context) (*authentity.User, bool) {
	user, ok := token.CurrentUser(c)
	if !ok {
		slog.Error("protected handler reached without session guard", "path", c.FullPath())
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, false
	}
	return user, true
}

// Dashboard renders the caller's logs, newest last (insertion order).
func (h *LogHandler) Dashboard(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	logs, err := h.logs.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("failed to list logs", "error", err, "user_id", user.ID)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Username": user.Username,
		"Logs":     logs,
	})
}

// Add creates a log entry from a submitted form and redirects to the
// dashboard. An empty exercise name leaves the store unchanged.
func (h *LogHandler) Add(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	in := dto.ParseAddLogForm(c)
	if err := h.logs.Add(c.Request.Context(), user.ID, in); err != nil {
		slog.Error("failed to add log", "error", err, "user_id", user.ID)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Delete removes the caller's log and redirects to the dashboard.
// A missing log is a 404; a log owned by someone else is left untouched
// and the response is indistinguishable from a successful delete.
func (h *LogHandler) Delete(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	if err := h.logs.Delete(c.Request.Context(), user.ID, uint(id)); err != nil {
		if errors.Is(err, usecase.ErrLogNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		slog.Error("failed to delete log", "error", err, "user_id", user.ID, "log_id", id)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
