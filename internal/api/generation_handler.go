package api

import (
	"log/slog"
	"net/http"

	"github.com/KKuznik/10x-cards/internal/api/shared"
	"github.com/KKuznik/10x-cards/internal/platform/logger"
	"github.com/KKuznik/10x-cards/internal/service"
)

// GenerationHandler serves /api/generations.
type GenerationHandler struct {
	generations service.GenerationService
	logger      *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(generations service.GenerationService, logger *slog.Logger) *GenerationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerationHandler")
	}
	return &GenerationHandler{
		generations: generations,
		logger:      logger.With(slog.String("component", "generation_handler")),
	}
}

// Create handles POST /api/generations. It returns the persisted generation
// and the unsaved proposals for the user to review.
func (h *GenerationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateGenerationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.generations.Generate(r.Context(), userID, req.SourceText, req.Model)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateGenerationResponse{
		GenerationResponse: toGenerationResponse(result.Generation),
		Flashcards:         toProposalResponses(result.Proposals),
	})
}

// List handles GET /api/generations.
func (h *GenerationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	query, err := parseGenerationQuery(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	page, err := h.generations.List(r.Context(), userID, query)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	items := make([]GenerationListItem, 0, len(page.Items))
	for _, g := range page.Items {
		items = append(items, toGenerationListItem(g))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, GenerationListResponse{
		Data:       items,
		Pagination: page.Pagination,
		Statistics: page.Statistics,
	})
}

// Get handles GET /api/generations/{id}.
func (h *GenerationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.generations.Get(r.Context(), userID, id)
	if err != nil {
		logOwnershipMiss(r, h.logger, "generation", id, err)
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("generation retrieved",
		slog.Int64("generation_id", id),
		slog.Int("flashcards", len(detail.Flashcards)))

	shared.RespondWithJSON(w, r, http.StatusOK, GenerationDetailResponse{
		GenerationResponse: toGenerationResponse(detail.Generation),
		Flashcards:         toFlashcardResponses(detail.Flashcards),
	})
}
