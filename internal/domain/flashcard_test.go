package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceAfterEdit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SourceAIEdited, SourceAIFull.AfterEdit())
	assert.Equal(t, SourceAIEdited, SourceAIEdited.AfterEdit())
	assert.Equal(t, SourceManual, SourceManual.AfterEdit())
}

func TestSourceIsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []Source{SourceManual, SourceAIFull, SourceAIEdited} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Source("ai").IsValid())
	assert.False(t, Source("").IsValid())
}

func TestNewFlashcard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	genID := int64(7)

	tests := []struct {
		name         string
		userID       uuid.UUID
		front        string
		back         string
		source       Source
		generationID *int64
		wantFields   []string
	}{
		{
			name:   "manual card is trimmed",
			userID: userID,
			front:  "  What is Go?  ",
			back:   "\tA programming language\n",
			source: SourceManual,
		},
		{
			name:         "ai card with generation",
			userID:       userID,
			front:        "Q",
			back:         "A",
			source:       SourceAIFull,
			generationID: &genID,
		},
		{
			name:       "missing user",
			userID:     uuid.Nil,
			front:      "Q",
			back:       "A",
			source:     SourceManual,
			wantFields: []string{"userId"},
		},
		{
			name:       "whitespace only front",
			userID:     userID,
			front:      "   ",
			back:       "A",
			source:     SourceManual,
			wantFields: []string{"front"},
		},
		{
			name:       "too long back",
			userID:     userID,
			front:      "Q",
			back:       strings.Repeat("b", MaxBackLength+1),
			source:     SourceManual,
			wantFields: []string{"back"},
		},
		{
			name:       "ai card without generation",
			userID:     userID,
			front:      "Q",
			back:       "A",
			source:     SourceAIEdited,
			wantFields: []string{"generationId"},
		},
		{
			name:         "manual card with generation",
			userID:       userID,
			front:        "Q",
			back:         "A",
			source:       SourceManual,
			generationID: &genID,
			wantFields:   []string{"generationId"},
		},
		{
			name:       "unknown source",
			userID:     userID,
			front:      "Q",
			back:       "A",
			source:     Source("imported"),
			wantFields: []string{"source"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := NewFlashcard(tt.userID, tt.front, tt.back, tt.source, tt.generationID)
			if len(tt.wantFields) > 0 {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				var verrs ValidationErrors
				require.True(t, errors.As(err, &verrs))
				for _, f := range tt.wantFields {
					assert.Contains(t, verrs.Fields(), f)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.front), card.Front)
			assert.Equal(t, strings.TrimSpace(tt.back), card.Back)
			assert.Equal(t, tt.source, card.Source)
			assert.Equal(t, card.CreatedAt, card.UpdatedAt)
		})
	}
}

func TestFlashcardApplyEdit(t *testing.T) {
	t.Parallel()

	genID := int64(3)
	card, err := NewFlashcard(uuid.New(), "front", "back", SourceAIFull, &genID)
	require.NoError(t, err)

	later := card.UpdatedAt.Add(time.Minute)
	require.NoError(t, card.ApplyEdit(" new front ", " new back ", later))
	assert.Equal(t, "new front", card.Front)
	assert.Equal(t, "new back", card.Back)
	assert.Equal(t, SourceAIEdited, card.Source)
	assert.Equal(t, later.UTC(), card.UpdatedAt)
	require.NotNil(t, card.GenerationID)
	assert.Equal(t, genID, *card.GenerationID)

	// A second edit keeps the card ai-edited.
	require.NoError(t, card.ApplyEdit("again", "again", later.Add(time.Minute)))
	assert.Equal(t, SourceAIEdited, card.Source)

	// Invalid edits leave the card untouched.
	err = card.ApplyEdit("", "x", later.Add(2*time.Minute))
	require.Error(t, err)
	assert.Equal(t, "again", card.Front)
}
