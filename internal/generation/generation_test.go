package generation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProposals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		want      []Proposal
		malformed bool
	}{
		{
			name:    "plain json",
			content: `{"flashcards":[{"front":"Q1","back":"A1"},{"front":"Q2","back":"A2"}]}`,
			want:    []Proposal{{"Q1", "A1"}, {"Q2", "A2"}},
		},
		{
			name:    "code fence",
			content: "```json\n{\"flashcards\":[{\"front\":\" Q \",\"back\":\" A \"}]}\n```",
			want:    []Proposal{{"Q", "A"}},
		},
		{
			name:    "blank pairs dropped",
			content: `{"flashcards":[{"front":"","back":"A"},{"front":"Q","back":"A"}]}`,
			want:    []Proposal{{"Q", "A"}},
		},
		{name: "not json", content: "Here are your flashcards!", malformed: true},
		{name: "empty content", content: "   ", malformed: true},
		{name: "empty list", content: `{"flashcards":[]}`, malformed: true},
		{name: "missing key", content: `{"cards":[{"front":"Q","back":"A"}]}`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProposals("test", tt.content)
			if tt.malformed {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateArgs(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateArgs("p", "text", "model"))
	assert.ErrorIs(t, ValidateArgs("p", " ", "model"), ErrInvalidArgument)
	assert.ErrorIs(t, ValidateArgs("p", "text", ""), ErrInvalidArgument)
}

func TestProviderErrorClassification(t *testing.T) {
	t.Parallel()

	unavailable := Unavailable("openrouter", 500, "internal error")
	assert.ErrorIs(t, unavailable, ErrProviderUnavailable)
	assert.False(t, IsTimeout(unavailable))
	assert.True(t, IsRetryable(unavailable))
	assert.Contains(t, unavailable.Error(), "status 500")

	timeout := TransportFailure("openrouter", fmt.Errorf("post: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, timeout, ErrProviderUnavailable)
	assert.ErrorIs(t, timeout, context.DeadlineExceeded)
	assert.True(t, IsTimeout(timeout))
	assert.False(t, IsRetryable(timeout))

	canceled := TransportFailure("openrouter", context.Canceled)
	assert.False(t, IsRetryable(canceled))

	malformed := Malformed("gemini", "bad json", errors.New("unexpected EOF"))
	assert.ErrorIs(t, malformed, ErrMalformedResponse)
	assert.False(t, IsRetryable(malformed))

	var pe *ProviderError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", unavailable), &pe))
	assert.Equal(t, 500, pe.StatusCode)
	assert.Equal(t, "internal error", pe.Body)
}

func TestUnavailableTruncatesBody(t *testing.T) {
	t.Parallel()

	body := make([]byte, 4096)
	for i := range body {
		body[i] = 'x'
	}
	err := Unavailable("p", 502, string(body))
	assert.Less(t, len(err.Body), 1100)
}
