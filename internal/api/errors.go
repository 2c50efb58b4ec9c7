package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/taskrail/taskrail-api/internal/api/shared"
	"github.com/taskrail/taskrail-api/internal/domain"
	"github.com/taskrail/taskrail-api/internal/password"
	"github.com/taskrail/taskrail-api/internal/store"
	"github.com/taskrail/taskrail-api/internal/task"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var pwErr *password.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrReportNotFound),
		errors.Is(err, task.ErrRunNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.As(err, &pwErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Queue saturation surfaces as service unavailability
	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrQueueClosed):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var pwErr *password.ValidationError

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "Authorization required"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrReportNotFound):
		return "Report not found"

	case errors.Is(err, task.ErrRunNotFound):
		return "no task found for this key"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already taken"

	case errors.Is(err, task.ErrQueueFull), errors.Is(err, task.ErrQueueClosed):
		return "Server is busy, try again later"

	case errors.As(err, &pwErr):
		// Password pipeline failures carry the validator's own message,
		// which is already written for end users.
		return pwErr.Message

	case errors.Is(err, domain.ErrInvalidPassword):
		return "Invalid password"

	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidID):
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)
		}
		return "Validation error"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes an error response derived from err. When
// fallbackMessage is non-empty it overrides the mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if fallbackMessage != "" {
		message = fallbackMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'CreateUserRequest.Username' Error:Field
	// validation for 'Username' failed on the 'min' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gtefield":
		return "must not be before the start"
	default:
		return "validation failed"
	}
}
