package domain

import (
	"time"

	"github.com/google/uuid"
)

// Source text and model limits for a generation request.
const (
	MinSourceTextLength = 1000
	MaxSourceTextLength = 10000
	MaxModelLength      = 100
)

// Error codes recorded on GenerationErrorLog rows.
const (
	ErrorCodeAPI             = "AI_API_ERROR"
	ErrorCodeInvalidResponse = "AI_INVALID_RESPONSE"
	ErrorCodeGeneration      = "AI_GENERATION_ERROR"
)

// Generation records one successful AI generation and how many of its
// proposals were later accepted. The accepted counters stay nil until the
// first batch accept.
type Generation struct {
	ID                    int64     `json:"id"`
	UserID                uuid.UUID `json:"userId"`
	Model                 string    `json:"model"`
	GeneratedCount        int       `json:"generatedCount"`
	AcceptedUneditedCount *int      `json:"acceptedUneditedCount"`
	AcceptedEditedCount   *int      `json:"acceptedEditedCount"`
	SourceTextHash        string    `json:"sourceTextHash"`
	SourceTextLength      int       `json:"sourceTextLength"`
	GenerationDuration    int       `json:"generationDuration"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// NewGeneration builds an unsaved Generation from a completed provider call.
func NewGeneration(
	userID uuid.UUID,
	model, sourceText string,
	generatedCount int,
	duration time.Duration,
) *Generation {
	now := time.Now().UTC()
	return &Generation{
		UserID:             userID,
		Model:              model,
		GeneratedCount:     generatedCount,
		SourceTextHash:     Fingerprint(sourceText),
		SourceTextLength:   TextLength(sourceText),
		GenerationDuration: int(duration.Milliseconds()),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// TotalAccepted sums both accepted counters, treating nil as zero.
func (g *Generation) TotalAccepted() int {
	return valueOrZero(g.AcceptedUneditedCount) + valueOrZero(g.AcceptedEditedCount)
}

// AcceptanceRate is the accepted share of generated proposals in percent.
func (g *Generation) AcceptanceRate() float64 {
	return AcceptanceRate(g.TotalAccepted(), g.GeneratedCount)
}

// AcceptanceRate returns accepted/generated*100, or 0 when generated is 0.
func AcceptanceRate(accepted, generated int) float64 {
	if generated == 0 {
		return 0
	}
	return float64(accepted) / float64(generated) * 100
}

// GenerationStatistics aggregates every generation owned by a user.
type GenerationStatistics struct {
	TotalGenerations      int     `json:"totalGenerations"`
	TotalGenerated        int     `json:"totalGenerated"`
	TotalAccepted         int     `json:"totalAccepted"`
	OverallAcceptanceRate float64 `json:"overallAcceptanceRate"`
}

// GenerationErrorLog is the append-only audit record of a failed generation.
type GenerationErrorLog struct {
	ID               int64
	UserID           uuid.UUID
	Model            string
	SourceTextHash   string
	SourceTextLength int
	ErrorCode        string
	ErrorMessage     string
	CreatedAt        time.Time
}

// NewGenerationErrorLog builds an unsaved audit record for a failed attempt.
func NewGenerationErrorLog(
	userID uuid.UUID,
	model, sourceText, code, message string,
) *GenerationErrorLog {
	return &GenerationErrorLog{
		UserID:           userID,
		Model:            model,
		SourceTextHash:   Fingerprint(sourceText),
		SourceTextLength: TextLength(sourceText),
		ErrorCode:        code,
		ErrorMessage:     message,
		CreatedAt:        time.Now().UTC(),
	}
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
