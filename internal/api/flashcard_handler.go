package api

import (
	"log/slog"
	"net/http"

	"github.com/KKuznik/10x-cards/internal/api/shared"
	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/service"
)

// FlashcardHandler serves /api/flashcards.
type FlashcardHandler struct {
	flashcards service.FlashcardService
	logger     *slog.Logger
}

// NewFlashcardHandler creates a FlashcardHandler.
func NewFlashcardHandler(flashcards service.FlashcardService, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FlashcardHandler")
	}
	return &FlashcardHandler{
		flashcards: flashcards,
		logger:     logger.With(slog.String("component", "flashcard_handler")),
	}
}

// Create handles POST /api/flashcards.
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateFlashcardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.flashcards.Create(r.Context(), userID, req.Front, req.Back)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, toFlashcardResponse(card))
}

// AcceptBatch handles POST /api/flashcards/batch.
func (h *FlashcardHandler) AcceptBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req BatchAcceptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	items := make([]service.AcceptedProposal, 0, len(req.Flashcards))
	for _, f := range req.Flashcards {
		items = append(items, service.AcceptedProposal{
			Front:  f.Front,
			Back:   f.Back,
			Source: domain.Source(f.Source),
		})
	}

	result, err := h.flashcards.AcceptBatch(r.Context(), userID, req.GenerationID, items)
	if err != nil {
		logOwnershipMiss(r, h.logger, "generation", req.GenerationID, err)
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, BatchAcceptResponse{
		Created:    result.Created,
		Flashcards: toFlashcardResponses(result.Flashcards),
	})
}

// Get handles GET /api/flashcards/{id}.
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	card, err := h.flashcards.Get(r.Context(), userID, id)
	if err != nil {
		logOwnershipMiss(r, h.logger, "flashcard", id, err)
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toFlashcardResponse(card))
}

// Update handles PUT /api/flashcards/{id}.
func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateFlashcardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.flashcards.Update(r.Context(), userID, id, req.Front, req.Back)
	if err != nil {
		logOwnershipMiss(r, h.logger, "flashcard", id, err)
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toFlashcardResponse(card))
}

// Delete handles DELETE /api/flashcards/{id}.
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.flashcards.Delete(r.Context(), userID, id); err != nil {
		logOwnershipMiss(r, h.logger, "flashcard", id, err)
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/flashcards.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	query, err := parseFlashcardQuery(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	page, err := h.flashcards.List(r.Context(), userID, query)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FlashcardListResponse{
		Data:       toFlashcardResponses(page.Items),
		Pagination: page.Pagination,
	})
}
