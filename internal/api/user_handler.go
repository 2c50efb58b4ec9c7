package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/taskrail/taskrail-api/internal/api/shared"
	"github.com/taskrail/taskrail-api/internal/domain"
	"github.com/taskrail/taskrail-api/internal/password"
	"github.com/taskrail/taskrail-api/internal/platform/logger"
	"github.com/taskrail/taskrail-api/internal/store"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userStore store.UserStore
	passwords *password.Controller
	hasher    *password.Hasher
	logger    *slog.Logger
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler.
// If log is nil, a default logger will be used.
func NewUserHandler(
	userStore store.UserStore,
	passwords *password.Controller,
	hasher *password.Hasher,
	log *slog.Logger,
) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		userStore: userStore,
		passwords: passwords,
		hasher:    hasher,
		logger:    log.With(slog.String("component", "user_handler")),
		validator: validator.New(),
	}
}

// CreateUser handles POST /api/v1/users/ requests.
// Registration is the one unauthenticated write: the candidate password
// runs through the validation pipeline against the profile fields, then
// only its hash is stored.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Username, req.Name, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validatePassword(user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.hashAndStore(w, r, user, h.userStore.Create); err != nil {
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// GetUser handles GET /api/v1/users/ requests, returning the
// authenticated user's own profile.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		log.Warn("failed to load user profile", slog.String("user_id", userID.String()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateUser handles PUT /api/v1/users/ requests: a full profile update
// that re-validates and re-hashes the password like on registration.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	existing, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	existing.Username = req.Username
	existing.Name = req.Name
	existing.Email = req.Email
	existing.Password = req.Password

	if err := existing.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validatePassword(existing); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.hashAndStore(w, r, existing, h.userStore.Update); err != nil {
		return
	}

	log.Info("user profile updated", slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(existing))
}

// validatePassword runs the configured validation pipeline against the
// user's plaintext password and profile fields.
func (h *UserHandler) validatePassword(user *domain.User) error {
	fields := make([]password.Field, 0, 3)
	for _, f := range user.AuxiliaryFields() {
		fields = append(fields, password.Field{Name: f.Name, Value: f.Value})
	}
	return h.passwords.Validate(user.Password, fields)
}

// hashAndStore hashes the user's plaintext password, drops the plaintext,
// and persists via save. A written error response is signalled by a
// non-nil return.
func (h *UserHandler) hashAndStore(
	w http.ResponseWriter,
	r *http.Request,
	user *domain.User,
	save func(ctx context.Context, user *domain.User) error,
) error {
	hashed, err := h.hasher.Hash(user.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to process password")
		return err
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := save(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return err
	}
	return nil
}
