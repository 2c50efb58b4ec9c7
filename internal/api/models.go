package api

import (
	"time"

	"github.com/taskrail/taskrail-api/internal/domain"
)

// CreateUserRequest represents the request body for user registration.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=6,max=32"`
	Name     string `json:"name"     validate:"omitempty,min=2,max=32"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UpdateUserRequest represents the request body for a full profile update.
// The password is re-validated and re-hashed like on registration.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=6,max=32"`
	Name     string `json:"name"     validate:"omitempty,min=2,max=32"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UserResponse represents the response data for a user profile.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// CreateTaskRequest represents the request body for creating a task.
// StartDate defaults to today when omitted.
type CreateTaskRequest struct {
	Name        string     `json:"name"        validate:"required,min=4,max=64"`
	Description string     `json:"description" validate:"max=512"`
	StartDate   *time.Time `json:"start_date"`
	StopDate    time.Time  `json:"stop_date"   validate:"required"`
	FinishDate  *time.Time `json:"finish_date"`
}

// UpdateTaskRequest represents the request body for a full task update.
type UpdateTaskRequest struct {
	Name        string     `json:"name"        validate:"required,min=4,max=64"`
	Description string     `json:"description" validate:"max=512"`
	StartDate   time.Time  `json:"start_date"  validate:"required"`
	StopDate    time.Time  `json:"stop_date"   validate:"required"`
	FinishDate  *time.Time `json:"finish_date"`
}

// PatchTaskRequest represents the request body for a partial task update.
// Only the supplied fields change.
type PatchTaskRequest struct {
	Name        *string    `json:"name"        validate:"omitempty,min=4,max=64"`
	Description *string    `json:"description" validate:"omitempty,max=512"`
	StartDate   *time.Time `json:"start_date"`
	StopDate    *time.Time `json:"stop_date"`
	FinishDate  *time.Time `json:"finish_date"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          string     `json:"task_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	StopDate    time.Time  `json:"stop_date"`
	FinishDate  *time.Time `json:"finish_date,omitempty"`
	Expired     bool       `json:"expired"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Name:        task.Name,
		Description: task.Description,
		StartDate:   task.StartDate,
		StopDate:    task.StopDate,
		FinishDate:  task.FinishDate,
		Expired:     task.Expired,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// CreateReportRequest represents the request body for requesting a report.
// An omitted name gets a timestamped default.
type CreateReportRequest struct {
	Name      string    `json:"name"       validate:"omitempty,max=64"`
	StartDate time.Time `json:"start_date" validate:"required"`
	StopDate  time.Time `json:"stop_date"  validate:"required,gtefield=StartDate"`
}

// ReportResponse represents the response data for a report.
type ReportResponse struct {
	ID        string    `json:"report_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	StopDate  time.Time `json:"stop_date"`
	Status    string    `json:"status"`
	TaskCount int       `json:"task_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func reportToResponse(report *domain.Report) ReportResponse {
	return ReportResponse{
		ID:        report.ID.String(),
		Name:      report.Name,
		StartDate: report.StartDate,
		StopDate:  report.StopDate,
		Status:    string(report.Status),
		TaskCount: report.TaskCount,
		CreatedAt: report.CreatedAt,
		UpdatedAt: report.UpdatedAt,
	}
}

// ScheduleRunResponse represents the response for a scheduled simulated run.
type ScheduleRunResponse struct {
	RunID string `json:"run_id"`
	Floor int    `json:"floor"`
	Bound int    `json:"bound"`
}

// CheckRunResponse represents the response for a simulated run status check.
type CheckRunResponse struct {
	RunID string `json:"run_id"`
	Phase string `json:"phase"`
}
