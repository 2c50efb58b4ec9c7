package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/taskrail/taskrail-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every read is scoped to the owning user; a task belonging to another user
// is indistinguishable from a missing one.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// Get retrieves a task by ID, scoped to the given user.
	// Returns ErrTaskNotFound if no such task exists for that user.
	Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ListByUser retrieves all tasks belonging to the given user,
	// most recently created first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// CountInPeriod counts the user's tasks whose [start, stop] interval
	// overlaps the given period. Used by report generation.
	CountInPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)

	// Update persists the full state of an existing task.
	// Returns ErrTaskNotFound if no such task exists for the task's user.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID, scoped to the given user.
	// Returns ErrTaskNotFound if no such task exists for that user.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
