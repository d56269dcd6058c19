package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Token is a signed access token and the moment it stops being accepted.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// JWTService issues and validates access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (Token, error)

	// ValidateToken verifies signature, lifetime and token type and returns
	// the claims. Failures map to ErrInvalidToken, ErrExpiredToken,
	// ErrTokenNotYetValid or ErrWrongTokenType.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	UserID    uuid.UUID `json:"uid,omitempty"`
	TokenType string    `json:"type,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
