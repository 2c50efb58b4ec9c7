package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskrail/taskrail-api/internal/api/shared"
	"github.com/taskrail/taskrail-api/internal/domain"
	"github.com/taskrail/taskrail-api/internal/password"
)

func defaultValidatorConfig() map[string]map[string]any {
	return map[string]map[string]any{
		"levenshtein": {"coefficient": 0.7},
		"strength":    {"uppercase": 1},
	}
}

func newTestUserHandler(t *testing.T, users *memUserStore) *UserHandler {
	t.Helper()

	hasher, err := password.NewHasher([]string{"bcrypt"})
	require.NoError(t, err)
	controller := password.NewController(defaultValidatorConfig())
	return NewUserHandler(users, controller, hasher, testLogger())
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func authedRequest(method, target string, body []byte, userID any) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func TestCreateUserSuccess(t *testing.T) {
	t.Parallel()

	users := newMemUserStore()
	handler := newTestUserHandler(t, users)

	rec := postJSON(t, handler.CreateUser, "/api/v1/users/", CreateUserRequest{
		Username: "johndoe99",
		Name:     "John",
		Email:    "john@example.com",
		Password: "Tr0ub4dor&3xtra",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "johndoe99", resp.Username)
	assert.NotEmpty(t, resp.ID)

	// The stored user carries only a hash.
	stored, err := users.GetByUsername(context.Background(), "johndoe99")
	require.NoError(t, err)
	assert.Empty(t, stored.Password)
	assert.NotEmpty(t, stored.HashedPassword)
	assert.NotEqual(t, "Tr0ub4dor&3xtra", stored.HashedPassword)
}

func TestCreateUserRejectsPasswordSimilarToUsername(t *testing.T) {
	t.Parallel()

	handler := newTestUserHandler(t, newMemUserStore())

	rec := postJSON(t, handler.CreateUser, "/api/v1/users/", CreateUserRequest{
		Username: "johndoe99",
		Name:     "John",
		Email:    "john@example.com",
		Password: "johndoe90",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "username")
}

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	t.Parallel()

	handler := newTestUserHandler(t, newMemUserStore())

	// Long enough but no uppercase letter.
	rec := postJSON(t, handler.CreateUser, "/api/v1/users/", CreateUserRequest{
		Username: "johndoe99",
		Name:     "John",
		Email:    "john@example.com",
		Password: "quiet ocean breeze",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "password is too weak", resp.Error)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	t.Parallel()

	users := newMemUserStore()
	handler := newTestUserHandler(t, users)

	req := CreateUserRequest{
		Username: "johndoe99",
		Name:     "John",
		Email:    "john@example.com",
		Password: "Tr0ub4dor&3xtra",
	}

	rec := postJSON(t, handler.CreateUser, "/api/v1/users/", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, handler.CreateUser, "/api/v1/users/", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateUserValidationFailures(t *testing.T) {
	t.Parallel()

	handler := newTestUserHandler(t, newMemUserStore())

	tests := []struct {
		name string
		req  CreateUserRequest
	}{
		{
			name: "username too short",
			req: CreateUserRequest{
				Username: "joe",
				Email:    "joe@example.com",
				Password: "Tr0ub4dor&3xtra",
			},
		},
		{
			name: "invalid email",
			req: CreateUserRequest{
				Username: "johndoe99",
				Email:    "not-an-email",
				Password: "Tr0ub4dor&3xtra",
			},
		},
		{
			name: "password too short",
			req: CreateUserRequest{
				Username: "johndoe99",
				Email:    "john@example.com",
				Password: "Sh0rt",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := postJSON(t, handler.CreateUser, "/api/v1/users/", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetUserReturnsOwnProfile(t *testing.T) {
	t.Parallel()

	users := newMemUserStore()
	handler := newTestUserHandler(t, users)

	user, err := domain.NewUser("johndoe99", "John", "john@example.com", "Tr0ub4dor&3xtra")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$fakefakefakefakefakefake"
	user.Password = ""
	require.NoError(t, users.Create(context.Background(), user))

	req := authedRequest(http.MethodGet, "/api/v1/users/", nil, user.ID)
	rec := httptest.NewRecorder()
	handler.GetUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, user.ID.String(), resp.ID)
	assert.Equal(t, "john@example.com", resp.Email)

	// The raw body must never carry hash material.
	assert.NotContains(t, rec.Body.String(), "hashed_password")
}

func TestGetUserUnauthenticated(t *testing.T) {
	t.Parallel()

	handler := newTestUserHandler(t, newMemUserStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil)
	rec := httptest.NewRecorder()
	handler.GetUser(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateUserRevalidatesPassword(t *testing.T) {
	t.Parallel()

	users := newMemUserStore()
	handler := newTestUserHandler(t, users)

	user, err := domain.NewUser("johndoe99", "John", "john@example.com", "Tr0ub4dor&3xtra")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$fakefakefakefakefakefake"
	user.Password = ""
	require.NoError(t, users.Create(context.Background(), user))

	payload, err := json.Marshal(UpdateUserRequest{
		Username: "johndoe99",
		Name:     "John",
		Email:    "john@example.com",
		Password: "johndoe90", // too close to the username
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodPut, "/api/v1/users/", payload, user.ID)
	rec := httptest.NewRecorder()
	handler.UpdateUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUserSuccess(t *testing.T) {
	t.Parallel()

	users := newMemUserStore()
	handler := newTestUserHandler(t, users)

	user, err := domain.NewUser("johndoe99", "John", "john@example.com", "Tr0ub4dor&3xtra")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$fakefakefakefakefakefake"
	user.Password = ""
	require.NoError(t, users.Create(context.Background(), user))

	payload, err := json.Marshal(UpdateUserRequest{
		Username: "johndoe99",
		Name:     "Johnny",
		Email:    "johnny@example.com",
		Password: "N3w&Diff3rent!pass",
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodPut, "/api/v1/users/", payload, user.ID)
	rec := httptest.NewRecorder()
	handler.UpdateUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Johnny", stored.Name)
	assert.Equal(t, "johnny@example.com", stored.Email)
	assert.Empty(t, stored.Password)
	assert.NotEqual(t, "$2a$10$fakefakefakefakefakefake", stored.HashedPassword)
}
