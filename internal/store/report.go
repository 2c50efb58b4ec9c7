package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskrail/taskrail-api/internal/domain"
)

// ReportStore defines the interface for report data persistence.
type ReportStore interface {
	// Create saves a new report to the store in its initial status.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, report *domain.Report) error

	// Get retrieves a report by ID, scoped to the given user.
	// Returns ErrReportNotFound if no such report exists for that user.
	Get(ctx context.Context, userID, reportID uuid.UUID) (*domain.Report, error)

	// GetByID retrieves a report by ID without user scoping.
	// Used by the background runner, which already knows the owner.
	GetByID(ctx context.Context, reportID uuid.UUID) (*domain.Report, error)

	// ListByUser retrieves all reports belonging to the given user,
	// most recently created first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Report, error)

	// UpdateStatus transitions a report to the given status, recording the
	// task count when the report completes.
	// Returns ErrReportNotFound if the report does not exist.
	UpdateStatus(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus, taskCount int) error

	// WithTx returns a new ReportStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReportStore
}
