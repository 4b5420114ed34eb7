package usecase

import (
	"context"
	"log/slog"
	"strings"

	"rehablog_backend/internal/feature/rehablog/domain/entity"
)

// LogRepository abstracts the persistence layer for log entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type LogRepository interface {
	// Create persists a new log to the storage.
	Create(ctx context.Context, log *entity.Log) error

	// ListByOwner retrieves all logs owned by the given user, in insertion order.
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Log, error)

	// FindByID retrieves a log by its ID.
	// Returns ErrLogNotFound if no such log exists.
	FindByID(ctx context.Context, id uint) (*entity.Log, error)

	// Delete removes a log by its ID.
	Delete(ctx context.Context, id uint) error
}

// AddLogInput is the validated payload for creating a log entry.
// Optional fields are nil when absent.
type AddLogInput struct {
	Exercise  string
	Reps      *int
	Sets      *int
	PainLevel *int
	Notes     string
}

// logUsecase implements the exercise-log business logic.
type logUsecase struct {
	logs LogRepository
}

// NewLogUsecase creates a new instance of logUsecase.
func NewLogUsecase(logs LogRepository) *logUsecase {
	return &logUsecase{logs: logs}
}

// Add persists a new log owned by ownerID. Submitting an empty exercise
// name is a no-op, not an error. OwnerID and CreatedAt are server-assigned.
func (u *logUsecase) Add(ctx context.Context, ownerID uint, in AddLogInput) error {
	exercise := strings.TrimSpace(in.Exercise)
	if exercise == "" {
		return nil
	}

	log := &entity.Log{
		OwnerID:   ownerID,
		Exercise:  exercise,
		Reps:      in.Reps,
		Sets:      in.Sets,
		PainLevel: in.PainLevel,
		Notes:     in.Notes,
	}
	return u.logs.Create(ctx, log)
}

// ListByOwner returns the caller's logs in insertion order.
// Logs are never listed across owners.
func (u *logUsecase) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Log, error) {
	return u.logs.ListByOwner(ctx, ownerID)
}

// Delete removes the log with the given ID if it belongs to ownerID.
// A missing log returns ErrLogNotFound. A log owned by someone else is
// left untouched and the call reports success; the mismatch is only
// logged for audit.
func (u *logUsecase) Delete(ctx context.Context, ownerID uint, id uint) error {
	log, err := u.logs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if log.OwnerID != ownerID {
		slog.Warn("ignored delete of log owned by another user",
			"log_id", id, "owner_id", log.OwnerID, "caller_id", ownerID)
		return nil
	}
	return u.logs.Delete(ctx, id)
}
