package api

import (
	"net/http"

	"github.com/KKuznik/10x-cards/internal/api/shared"
	"github.com/KKuznik/10x-cards/internal/service"
)

// ModelHandler serves the public model catalogue.
type ModelHandler struct {
	catalog *service.ModelCatalog
}

// NewModelHandler creates a ModelHandler.
func NewModelHandler(catalog *service.ModelCatalog) *ModelHandler {
	return &ModelHandler{catalog: catalog}
}

// List handles GET /api/models.
func (h *ModelHandler) List(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ModelsResponse{
		Models:       h.catalog.Models(),
		DefaultModel: h.catalog.Default(),
	})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
