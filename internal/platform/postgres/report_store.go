package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskrail/taskrail-api/internal/domain"
	"github.com/taskrail/taskrail-api/internal/platform/logger"
	"github.com/taskrail/taskrail-api/internal/store"
)

// ReportStore implements the store.ReportStore interface using a PostgreSQL
// database as the storage backend.
type ReportStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReportStore creates a new PostgreSQL implementation of the ReportStore
// interface. If logger is nil, a default logger will be used.
func NewReportStore(db store.DBTX, log *slog.Logger) *ReportStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReportStore{
		db:     db,
		logger: log.With(slog.String("component", "report_store")),
	}
}

// Ensure ReportStore implements store.ReportStore interface
var _ store.ReportStore = (*ReportStore)(nil)

const reportColumns = `id, user_id, name, start_date, stop_date, status, task_count, created_at, updated_at`

// Create implements store.ReportStore.Create.
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *ReportStore) Create(ctx context.Context, report *domain.Report) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := report.Validate(); err != nil {
		log.Warn("report validation failed during create",
			slog.String("error", err.Error()),
			slog.String("report_id", report.ID.String()))
		return err
	}

	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		report.ID,
		report.UserID,
		report.Name,
		report.StartDate,
		report.StopDate,
		report.Status,
		report.TaskCount,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during report creation",
				slog.String("report_id", report.ID.String()),
				slog.String("user_id", report.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, report.UserID)
		}
		log.Error("failed to create report",
			slog.String("error", err.Error()),
			slog.String("report_id", report.ID.String()))
		return MapError(err)
	}

	log.Info("report created successfully",
		slog.String("report_id", report.ID.String()),
		slog.String("user_id", report.UserID.String()))
	return nil
}

// Get implements store.ReportStore.Get.
func (s *ReportStore) Get(ctx context.Context, userID, reportID uuid.UUID) (*domain.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE id = $1 AND user_id = $2
	`
	return s.getOne(ctx, query, reportID, userID)
}

// GetByID implements store.ReportStore.GetByID.
func (s *ReportStore) GetByID(ctx context.Context, reportID uuid.UUID) (*domain.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE id = $1
	`
	return s.getOne(ctx, query, reportID)
}

func (s *ReportStore) getOne(ctx context.Context, query string, args ...any) (*domain.Report, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	report, err := scanReport(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReportNotFound
		}
		log.Error("failed to get report", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return report, nil
}

// ListByUser implements store.ReportStore.ListByUser.
func (s *ReportStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Report, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list reports",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var reports []*domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, MapError(err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return reports, nil
}

// UpdateStatus implements store.ReportStore.UpdateStatus.
func (s *ReportStore) UpdateStatus(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus, taskCount int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return domain.ErrInvalidReportStatus
	}

	query := `
		UPDATE reports
		SET status = $1, task_count = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query, status, taskCount, time.Now().UTC(), reportID)
	if err != nil {
		log.Error("failed to update report status",
			slog.String("error", err.Error()),
			slog.String("report_id", reportID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "report"); err != nil {
		return store.ErrReportNotFound
	}

	log.Info("report status updated",
		slog.String("report_id", reportID.String()),
		slog.String("status", string(status)))
	return nil
}

// WithTx implements store.ReportStore.WithTx.
func (s *ReportStore) WithTx(tx *sql.Tx) store.ReportStore {
	return &ReportStore{db: tx, logger: s.logger}
}

func scanReport(row scanner) (*domain.Report, error) {
	var report domain.Report
	err := row.Scan(
		&report.ID,
		&report.UserID,
		&report.Name,
		&report.StartDate,
		&report.StopDate,
		&report.Status,
		&report.TaskCount,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
