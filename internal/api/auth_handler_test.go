package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/service"
	"github.com/KKuznik/10x-cards/internal/service/auth"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodPassword = "Sup3r$ecret"

func authResult(email string) *service.AuthResult {
	return &service.AuthResult{
		User: &domain.User{ID: uuid.New(), Email: email},
		Token: auth.Token{
			Value:     "signed.jwt.token",
			ExpiresAt: time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}
}

func TestRegisterHandler(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.users.RegisterFn = func(_ context.Context, email, password string) (*service.AuthResult, error) {
		assert.Equal(t, goodPassword, password)
		return authResult(email), nil
	}

	w := s.do(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Email: "new@example.com", Password: goodPassword, ConfirmPassword: goodPassword,
	}, uuid.Nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody[AuthResponse](t, w)
	assert.Equal(t, "new@example.com", resp.Email)
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, "2030-01-02T03:04:05Z", resp.ExpiresAt)
}

func TestRegisterHandler_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		req   RegisterRequest
		field string
	}{
		{"bad email", RegisterRequest{Email: "x", Password: goodPassword, ConfirmPassword: goodPassword}, "email"},
		{"weak password", RegisterRequest{Email: "a@b.co", Password: "password", ConfirmPassword: "password"}, "password"},
		{"mismatch", RegisterRequest{Email: "a@b.co", Password: goodPassword, ConfirmPassword: "Other1!xx"}, "confirmPassword"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServer(t)
			w := s.do(t, http.MethodPost, "/api/auth/register", tc.req, uuid.Nil)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeError(t, w).Details, tc.field)
		})
	}
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.users.RegisterFn = func(context.Context, string, string) (*service.AuthResult, error) {
		return nil, store.ErrEmailExists
	}

	w := s.do(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Email: "dup@example.com", Password: goodPassword, ConfirmPassword: goodPassword,
	}, uuid.Nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already exists", decodeError(t, w).Error)
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.users.LoginFn = func(_ context.Context, email, password string) (*service.AuthResult, error) {
		if password != goodPassword {
			return nil, service.ErrInvalidCredentials
		}
		return authResult(email), nil
	}

	w := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: "a@example.com", Password: goodPassword}, uuid.Nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "signed.jwt.token", decodeBody[AuthResponse](t, w).Token)

	w = s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: "a@example.com", Password: "nope"}, uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeError(t, w).Error)
}

func TestLogoutHandler(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	userID := uuid.New()
	var loggedOut uuid.UUID
	s.users.LogoutFn = func(_ context.Context, uid uuid.UUID) error {
		loggedOut = uid
		return nil
	}

	w := s.do(t, http.MethodPost, "/api/auth/logout", nil, userID)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, userID, loggedOut)

	w = s.do(t, http.MethodPost, "/api/auth/logout", nil, uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteAccountHandler(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.users.DeleteAccountFn = func(_ context.Context, _ uuid.UUID, password, confirmation string) error {
		if confirmation != service.DeleteConfirmation {
			return service.ErrInvalidConfirmation
		}
		if password != goodPassword {
			return service.ErrInvalidCredentials
		}
		return nil
	}
	userID := uuid.New()

	w := s.do(t, http.MethodDelete, "/api/auth/account",
		DeleteAccountRequest{Password: goodPassword, Confirmation: "DELETE"}, userID)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodDelete, "/api/auth/account",
		DeleteAccountRequest{Password: goodPassword, Confirmation: "yes"}, userID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error, "DELETE")

	w = s.do(t, http.MethodDelete, "/api/auth/account",
		DeleteAccountRequest{Password: "wrong", Confirmation: "DELETE"}, userID)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModelsAndHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/models", nil, uuid.Nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[ModelsResponse](t, w)
	assert.Equal(t, service.DefaultModelID, resp.DefaultModel)
	assert.Len(t, resp.Models, 4)

	w = s.do(t, http.MethodGet, "/health", nil, uuid.Nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody[HealthResponse](t, w).Status)
}
