package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrTaskNameTooShort    = errors.New("task name must be at least 4 characters long")
	ErrTaskNameTooLong     = errors.New("task name must be at most 64 characters long")
	ErrDescriptionTooLong  = errors.New("task description must be at most 512 characters long")
	ErrEmptyTaskUserID     = errors.New("task must belong to a user")
	ErrStopBeforeStart     = errors.New("stop date cannot be before start date")
	ErrMissingTaskStopDate = errors.New("stop date is required")
)

// Task represents a single unit of work tracked for a user.
type Task struct {
	ID          uuid.UUID  `json:"task_id"`
	UserID      uuid.UUID  `json:"-"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	StopDate    time.Time  `json:"stop_date"`
	FinishDate  *time.Time `json:"finish_date,omitempty"`
	Expired     bool       `json:"expired"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task for the given user.
// StartDate defaults to today when zero. Returns an error if validation fails.
func NewTask(userID uuid.UUID, name, description string, startDate, stopDate time.Time, finishDate *time.Time) (*Task, error) {
	if startDate.IsZero() {
		startDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		StartDate:   startDate,
		StopDate:    stopDate,
		FinishDate:  finishDate,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	task.RefreshExpired()

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if len(t.Name) < 4 {
		return ErrTaskNameTooShort
	}
	if len(t.Name) > 64 {
		return ErrTaskNameTooLong
	}
	if len(t.Description) > 512 {
		return ErrDescriptionTooLong
	}

	if t.StopDate.IsZero() {
		return ErrMissingTaskStopDate
	}
	if t.StopDate.Before(t.StartDate) {
		return ErrStopBeforeStart
	}

	return nil
}

// RefreshExpired recomputes the expired flag from the finish date.
// A task finished after its stop date is overdue regardless of what the
// caller supplied for the flag.
func (t *Task) RefreshExpired() {
	if t.FinishDate != nil && t.FinishDate.After(t.StopDate) {
		t.Expired = true
	}
}
