package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskrail/taskrail-api/internal/domain"
	"github.com/taskrail/taskrail-api/internal/store"
)

// Common errors
var (
	ErrNilReportStore = errors.New("report store cannot be nil")
	ErrNilTaskStore   = errors.New("task store cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrEmptyReportID  = errors.New("report ID cannot be empty")
)

// ReportGenerationTask implements the Task interface for computing the
// contents of a report: the number of the owner's tasks whose period
// overlaps the report period. It advances the report through the
// running and completed (or failed) states as it works.
type ReportGenerationTask struct {
	id          uuid.UUID
	reportID    uuid.UUID
	reportStore store.ReportStore
	taskStore   store.TaskStore
	logger      *slog.Logger
	status      TaskStatus
}

// NewReportGenerationTask creates a new report generation task.
func NewReportGenerationTask(
	reportID uuid.UUID,
	reportStore store.ReportStore,
	taskStore store.TaskStore,
	logger *slog.Logger,
) (*ReportGenerationTask, error) {
	if reportStore == nil {
		return nil, ErrNilReportStore
	}
	if taskStore == nil {
		return nil, ErrNilTaskStore
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if reportID == uuid.Nil {
		return nil, ErrEmptyReportID
	}

	return &ReportGenerationTask{
		id:          uuid.New(),
		reportID:    reportID,
		reportStore: reportStore,
		taskStore:   taskStore,
		logger:      logger.With("task_type", TaskTypeReportGeneration, "report_id", reportID),
		status:      TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier.
func (t *ReportGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier.
func (t *ReportGenerationTask) Type() string {
	return TaskTypeReportGeneration
}

// Status returns the current task status.
func (t *ReportGenerationTask) Status() TaskStatus {
	return t.status
}

// Execute runs the report generation task, handling the complete
// lifecycle from fetching the report, marking it running, counting
// the overlapping tasks, and recording the result. Any failure after
// the report was marked running also marks the report failed so a
// client polling the report sees a terminal state.
func (t *ReportGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting report generation task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	report, err := t.reportStore.GetByID(ctx, t.reportID)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to retrieve report", "error", err)
		return fmt.Errorf("failed to retrieve report: %w", err)
	}

	t.logger.Info("retrieved report",
		"user_id", report.UserID,
		"report_status", report.Status)

	err = t.reportStore.UpdateStatus(ctx, t.reportID, domain.ReportStatusRunning, report.TaskCount)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to mark report running", "error", err)
		return fmt.Errorf("failed to mark report running: %w", err)
	}

	count, err := t.taskStore.CountInPeriod(ctx, report.UserID, report.StartDate, report.StopDate)
	if err != nil {
		t.markFailed(ctx, report.TaskCount)
		t.logger.Error("failed to count tasks in report period", "error", err)
		return fmt.Errorf("failed to count tasks in report period: %w", err)
	}

	t.logger.Info("counted tasks in report period", "count", count)

	err = t.reportStore.UpdateStatus(ctx, t.reportID, domain.ReportStatusCompleted, count)
	if err != nil {
		t.markFailed(ctx, report.TaskCount)
		t.logger.Error("failed to mark report completed", "error", err)
		return fmt.Errorf("failed to mark report completed: %w", err)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("report generation task completed successfully", "task_count", count)
	return nil
}

// markFailed records the failed state on the report; the task error is
// what callers act on, so a failure here is only logged.
func (t *ReportGenerationTask) markFailed(ctx context.Context, taskCount int) {
	t.status = TaskStatusFailed
	if err := t.reportStore.UpdateStatus(ctx, t.reportID, domain.ReportStatusFailed, taskCount); err != nil {
		t.logger.Error("failed to mark report failed", "error", err)
	}
}
