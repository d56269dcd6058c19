package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source is the provenance tag of a flashcard.
type Source string

const (
	// SourceManual marks a card written by the user.
	SourceManual Source = "manual"
	// SourceAIFull marks an AI proposal accepted without changes.
	SourceAIFull Source = "ai-full"
	// SourceAIEdited marks an AI proposal that was changed by the user.
	SourceAIEdited Source = "ai-edited"
)

// Flashcard field limits.
const (
	MaxFrontLength = 200
	MaxBackLength  = 500
)

// IsValid reports whether s is one of the three provenance tags.
func (s Source) IsValid() bool {
	switch s {
	case SourceManual, SourceAIFull, SourceAIEdited:
		return true
	}
	return false
}

// IsAI reports whether s marks a card that came from a generation.
func (s Source) IsAI() bool {
	return s == SourceAIFull || s == SourceAIEdited
}

// AfterEdit returns the provenance a card has once its content is edited.
// ai-full becomes ai-edited; every other tag is unchanged, so the
// transition happens at most once.
func (s Source) AfterEdit() Source {
	if s == SourceAIFull {
		return SourceAIEdited
	}
	return s
}

// Flashcard is a front/back study card owned by one user. GenerationID is
// set only for cards accepted from an AI generation.
type Flashcard struct {
	ID           int64     `json:"id"`
	UserID       uuid.UUID `json:"-"`
	GenerationID *int64    `json:"generationId"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	Source       Source    `json:"source"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewFlashcard builds an unsaved flashcard with trimmed content.
// Manual cards must not carry a generation ID and AI cards must.
func NewFlashcard(
	userID uuid.UUID,
	front, back string,
	source Source,
	generationID *int64,
) (*Flashcard, error) {
	now := time.Now().UTC()
	card := &Flashcard{
		UserID:       userID,
		GenerationID: generationID,
		Front:        strings.TrimSpace(front),
		Back:         strings.TrimSpace(back),
		Source:       source,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}
	return card, nil
}

// Validate checks the flashcard's fields and provenance.
func (f *Flashcard) Validate() error {
	var errs ValidationErrors

	if f.UserID == uuid.Nil {
		errs.Add("userId", "is required")
	}
	validateCardText(&errs, f.Front, f.Back)

	switch {
	case !f.Source.IsValid():
		errs.Add("source", "must be one of manual, ai-full, ai-edited")
	case f.Source == SourceManual && f.GenerationID != nil:
		errs.Add("generationId", "must be empty for manual flashcards")
	case f.Source.IsAI() && (f.GenerationID == nil || *f.GenerationID < 1):
		errs.Add("generationId", "is required for AI flashcards")
	}

	return errs.ErrOrNil()
}

// ApplyEdit replaces front and back with trimmed values, advances the
// provenance tag and touches UpdatedAt. The card is unchanged on error.
func (f *Flashcard) ApplyEdit(front, back string, now time.Time) error {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)

	var errs ValidationErrors
	validateCardText(&errs, front, back)
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	f.Front = front
	f.Back = back
	f.Source = f.Source.AfterEdit()
	f.UpdatedAt = now.UTC()
	return nil
}

func validateCardText(errs *ValidationErrors, front, back string) {
	switch n := TextLength(front); {
	case n == 0:
		errs.Add("front", "is required")
	case n > MaxFrontLength:
		errs.Add("front", "must be at most 200 characters")
	}
	switch n := TextLength(back); {
	case n == 0:
		errs.Add("back", "is required")
	case n > MaxBackLength:
		errs.Add("back", "must be at most 500 characters")
	}
}
