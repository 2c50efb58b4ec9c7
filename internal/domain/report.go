package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReportStatus represents the lifecycle state of an asynchronous report.
type ReportStatus string

// Possible report status values
const (
	ReportStatusCreated   ReportStatus = "created"
	ReportStatusRunning   ReportStatus = "running"
	ReportStatusCompleted ReportStatus = "completed"
	ReportStatusFailed    ReportStatus = "failed"
)

// Common report validation errors
var (
	ErrEmptyReportID       = errors.New("report ID cannot be empty")
	ErrEmptyReportUserID   = errors.New("report must belong to a user")
	ErrEmptyReportName     = errors.New("report name cannot be empty")
	ErrInvalidReportStatus = errors.New("invalid report status")
	ErrInvalidReportPeriod = errors.New("report period stop date cannot be before start date")
)

// Report represents an asynchronously generated summary of a user's tasks
// over a period. It is created in the "created" state and advanced by the
// background runner as generation proceeds.
type Report struct {
	ID        uuid.UUID    `json:"report_id"`
	UserID    uuid.UUID    `json:"-"`
	Name      string       `json:"name"`
	StartDate time.Time    `json:"start_date"`
	StopDate  time.Time    `json:"stop_date"`
	Status    ReportStatus `json:"status"`
	TaskCount int          `json:"task_count"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewReport creates a new Report covering [startDate, stopDate].
// When name is empty a timestamped default is generated, matching the
// report naming convention used by clients.
func NewReport(userID uuid.UUID, name string, startDate, stopDate time.Time) (*Report, error) {
	if name == "" {
		name = fmt.Sprintf("report_%s", time.Now().UTC().Format("2006-01-02T15:04:05"))
	}

	report := &Report{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		StartDate: startDate,
		StopDate:  stopDate,
		Status:    ReportStatusCreated,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := report.Validate(); err != nil {
		return nil, err
	}

	return report, nil
}

// Validate checks if the Report has valid data.
func (r *Report) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReportID
	}
	if r.UserID == uuid.Nil {
		return ErrEmptyReportUserID
	}
	if r.Name == "" {
		return ErrEmptyReportName
	}
	if r.StopDate.Before(r.StartDate) {
		return ErrInvalidReportPeriod
	}
	if !r.Status.IsValid() {
		return ErrInvalidReportStatus
	}
	return nil
}

// IsValid reports whether the status is one of the known lifecycle states.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusCreated, ReportStatusRunning, ReportStatusCompleted, ReportStatusFailed:
		return true
	}
	return false
}
