package mocks

import (
	"context"
	"strings"
	"time"

	"github.com/KKuznik/10x-cards/internal/service/auth"
	"github.com/google/uuid"
)

// MockJWTService implements auth.JWTService. By default it issues tokens of
// the form "token-<uuid>" and accepts exactly those.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (auth.Token, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

const mockTokenPrefix = "token-"

// GenerateToken implements auth.JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (auth.Token, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return auth.Token{
		Value:     mockTokenPrefix + userID.String(),
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}, nil
}

// ValidateToken implements auth.JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	raw, ok := strings.CutPrefix(tokenString, mockTokenPrefix)
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	now := time.Now().UTC()
	return &auth.Claims{
		UserID:    id,
		TokenType: "access",
		Subject:   id.String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}

// MockPasswordHasher implements auth.PasswordHasher with a reversible
// "hashed:" prefix so tests run without bcrypt's cost.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordHasher.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}
