package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/KKuznik/10x-cards/internal/api/shared"
	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// getUserIDFromContext extracts the authenticated user's ID placed in the
// context by the auth middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getPathID parses a positive integer path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// requireUser writes a 401 and returns false when the request carries no
// authenticated user.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

// requireUserAndPathID combines requireUser and getPathID, writing the error
// response itself.
func requireUserAndPathID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, int64, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return uuid.Nil, 0, false
	}
	id, err := getPathID(r, paramName)
	if err != nil {
		HandleAPIError(w, r, err)
		return uuid.Nil, 0, false
	}
	return userID, id, true
}

// decodeAndValidate decodes the JSON body into req and validates it. On
// failure it writes the response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	return true
}

// queryInt reads an optional integer query parameter; nil means absent. A
// non-integer value is recorded in errs.
func queryInt(values url.Values, name string, errs *domain.ValidationErrors) *int {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(name, "must be an integer")
		return nil
	}
	return &n
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// parseFlashcardQuery reads and validates the flashcard list parameters.
func parseFlashcardQuery(r *http.Request) (domain.FlashcardQuery, error) {
	values := r.URL.Query()
	var errs domain.ValidationErrors
	params := FlashcardListParams{
		Page:      queryInt(values, "page", &errs),
		PageSize:  queryInt(values, "pageSize", &errs),
		Source:    values.Get("source"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
		Search:    values.Get("search"),
	}
	if err := errs.ErrOrNil(); err != nil {
		return domain.FlashcardQuery{}, err
	}
	if err := shared.ValidateRequest(params); err != nil {
		return domain.FlashcardQuery{}, err
	}

	query := domain.FlashcardQuery{
		Page:      intOrZero(params.Page),
		PageSize:  intOrZero(params.PageSize),
		Search:    params.Search,
		SortBy:    domain.FlashcardSortField(params.SortBy),
		SortOrder: domain.SortOrder(params.SortOrder),
	}
	if params.Source != "" {
		source := domain.Source(params.Source)
		query.Source = &source
	}
	query.Normalize()
	return query, nil
}

// parseGenerationQuery reads and validates the generation list parameters.
func parseGenerationQuery(r *http.Request) (domain.GenerationQuery, error) {
	values := r.URL.Query()
	var errs domain.ValidationErrors
	params := GenerationListParams{
		Page:      queryInt(values, "page", &errs),
		PageSize:  queryInt(values, "pageSize", &errs),
		SortOrder: values.Get("sortOrder"),
	}
	if err := errs.ErrOrNil(); err != nil {
		return domain.GenerationQuery{}, err
	}
	if err := shared.ValidateRequest(params); err != nil {
		return domain.GenerationQuery{}, err
	}

	query := domain.GenerationQuery{
		Page:      intOrZero(params.Page),
		PageSize:  intOrZero(params.PageSize),
		SortOrder: domain.SortOrder(params.SortOrder),
	}
	query.Normalize()
	return query, nil
}
