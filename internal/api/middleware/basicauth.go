package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/taskrail/taskrail-api/internal/api/shared"
	"github.com/taskrail/taskrail-api/internal/password"
	"github.com/taskrail/taskrail-api/internal/redact"
	"github.com/taskrail/taskrail-api/internal/store"
)

// basicRealm is advertised in the WWW-Authenticate challenge.
const basicRealm = `Basic realm="taskrail", charset="UTF-8"`

// BasicAuthMiddleware authenticates requests with HTTP Basic credentials
// against stored users.
type BasicAuthMiddleware struct {
	userStore store.UserStore
	verifier  password.Verifier
	logger    *slog.Logger
}

// NewBasicAuthMiddleware creates a new BasicAuthMiddleware with the given
// dependencies. If logger is nil, a default logger will be used.
func NewBasicAuthMiddleware(
	userStore store.UserStore,
	verifier password.Verifier,
	logger *slog.Logger,
) *BasicAuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &BasicAuthMiddleware{
		userStore: userStore,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "basic_auth")),
	}
}

// Authenticate resolves Basic credentials to a stored user and adds the
// user ID to the request context for authorized requests. Unknown users
// and wrong passwords produce the same challenge so the response does
// not reveal which part failed.
func (m *BasicAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, pass, ok := r.BasicAuth()
		if !ok {
			m.challenge(w, r, "Authorization required")
			return
		}

		user, err := m.userStore.GetByUsername(r.Context(), username)
		if err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				m.logger.Error("failed to look up user for authentication",
					"error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
				return
			}
			m.challenge(w, r, "Invalid credentials")
			return
		}

		if !m.verifier.Verify(pass, user.HashedPassword) {
			m.challenge(w, r, "Invalid credentials")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *BasicAuthMiddleware) challenge(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", basicRealm)
	shared.RespondWithError(w, r, http.StatusUnauthorized, message)
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
