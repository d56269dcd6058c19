package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "jan.kowalski@example.com", NormalizeEmail("  Jan.Kowalski@Example.COM "))
}

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("User@Example.com", "$2a$10$hash")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	_, err = NewUser("", "hash")
	assert.ErrorIs(t, err, ErrEmptyEmail)

	_, err = NewUser("not-an-email", "hash")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser("user@example.com", "")
	assert.ErrorIs(t, err, ErrEmptyPasswordHash)
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("user@localhost"))
	assert.False(t, IsValidEmail("Name <user@example.com>"))
	assert.False(t, IsValidEmail(strings.Repeat("a", 250)+"@example.com"))
}

func TestIsStrongPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		want     bool
	}{
		{"Passw0rd!", true},
		{"Pa0!", false},
		{"password1!", false},
		{"PASSWORD1!", false},
		{"Password!!", false},
		{"Password11", false},
		{strings.Repeat("Aa1!", 26), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStrongPassword(tt.password), tt.password)
	}
}
