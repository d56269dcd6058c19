package api

import (
	"time"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/generation"
	"github.com/KKuznik/10x-cards/internal/service"
	"github.com/google/uuid"
)

// FlashcardResponse is the wire form of a flashcard.
type FlashcardResponse struct {
	ID           int64     `json:"id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	Source       string    `json:"source"`
	GenerationID *int64    `json:"generationId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FlashcardListResponse is one page of flashcards.
type FlashcardListResponse struct {
	Data       []FlashcardResponse `json:"data"`
	Pagination domain.Pagination   `json:"pagination"`
}

// BatchAcceptResponse is returned by POST /api/flashcards/batch.
type BatchAcceptResponse struct {
	Created    int                 `json:"created"`
	Flashcards []FlashcardResponse `json:"flashcards"`
}

// GenerationResponse is the wire form of a generation. The accepted counters
// are null until the first batch accept.
type GenerationResponse struct {
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

// ProposalResponse is one unsaved proposal.
type ProposalResponse struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// CreateGenerationResponse is returned by POST /api/generations.
type CreateGenerationResponse struct {
	GenerationResponse
	Flashcards []ProposalResponse `json:"flashcards"`
}

// GenerationDetailResponse is returned by GET /api/generations/{id}.
type GenerationDetailResponse struct {
	GenerationResponse
	Flashcards []FlashcardResponse `json:"flashcards"`
}

// GenerationListItem is the summary shown in the generation history.
type GenerationListItem struct {
	ID                    int64     `json:"id"`
	Model                 string    `json:"model"`
	GeneratedCount        int       `json:"generatedCount"`
	AcceptedUneditedCount *int      `json:"acceptedUneditedCount"`
	AcceptedEditedCount   *int      `json:"acceptedEditedCount"`
	SourceTextLength      int       `json:"sourceTextLength"`
	GenerationDuration    int       `json:"generationDuration"`
	CreatedAt             time.Time `json:"createdAt"`
	AcceptanceRate        float64   `json:"acceptanceRate"`
}

// GenerationListResponse is one page of generations plus statistics.
type GenerationListResponse struct {
	Data       []GenerationListItem        `json:"data"`
	Pagination domain.Pagination           `json:"pagination"`
	Statistics domain.GenerationStatistics `json:"statistics"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt string    `json:"expiresAt"`
}

// ModelsResponse is returned by GET /api/models.
type ModelsResponse struct {
	Models       []service.Model `json:"models"`
	DefaultModel string          `json:"defaultModel"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func toFlashcardResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:           card.ID,
		Front:        card.Front,
		Back:         card.Back,
		Source:       string(card.Source),
		GenerationID: card.GenerationID,
		CreatedAt:    card.CreatedAt,
		UpdatedAt:    card.UpdatedAt,
	}
}

func toFlashcardResponses(cards []*domain.Flashcard) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toFlashcardResponse(c))
	}
	return out
}

func toGenerationResponse(g *domain.Generation) GenerationResponse {
	return GenerationResponse{
		ID:                    g.ID,
		UserID:                g.UserID,
		Model:                 g.Model,
		GeneratedCount:        g.GeneratedCount,
		AcceptedUneditedCount: g.AcceptedUneditedCount,
		AcceptedEditedCount:   g.AcceptedEditedCount,
		SourceTextHash:        g.SourceTextHash,
		SourceTextLength:      g.SourceTextLength,
		GenerationDuration:    g.GenerationDuration,
		CreatedAt:             g.CreatedAt,
		UpdatedAt:             g.UpdatedAt,
	}
}

func toGenerationListItem(g *domain.Generation) GenerationListItem {
	return GenerationListItem{
		ID:                    g.ID,
		Model:                 g.Model,
		GeneratedCount:        g.GeneratedCount,
		AcceptedUneditedCount: g.AcceptedUneditedCount,
		AcceptedEditedCount:   g.AcceptedEditedCount,
		SourceTextLength:      g.SourceTextLength,
		GenerationDuration:    g.GenerationDuration,
		CreatedAt:             g.CreatedAt,
		AcceptanceRate:        g.AcceptanceRate(),
	}
}

func toProposalResponses(proposals []generation.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, ProposalResponse{Front: p.Front, Back: p.Back})
	}
	return out
}

func toAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		UserID:    result.User.ID,
		Email:     result.User.Email,
		Token:     result.Token.Value,
		ExpiresAt: result.Token.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
