package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/KKuznik/10x-cards/internal/api/shared"
	"github.com/KKuznik/10x-cards/internal/mocks"
	"github.com/KKuznik/10x-cards/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServer struct {
	generations *mocks.MockGenerationService
	flashcards  *mocks.MockFlashcardService
	users       *mocks.MockUserService
	router      chi.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		generations: &mocks.MockGenerationService{},
		flashcards:  &mocks.MockFlashcardService{},
		users:       &mocks.MockUserService{},
	}
	gh := NewGenerationHandler(s.generations, discardLogger())
	fh := NewFlashcardHandler(s.flashcards, discardLogger())
	ah := NewAuthHandler(s.users, discardLogger())
	mh := NewModelHandler(service.NewModelCatalog(""))

	r := chi.NewRouter()
	r.Get("/health", Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/models", mh.List)
		r.Post("/auth/register", ah.Register)
		r.Post("/auth/login", ah.Login)
		r.Post("/auth/logout", ah.Logout)
		r.Delete("/auth/account", ah.DeleteAccount)
		r.Post("/generations", gh.Create)
		r.Get("/generations", gh.List)
		r.Get("/generations/{id}", gh.Get)
		r.Post("/flashcards", fh.Create)
		r.Post("/flashcards/batch", fh.AcceptBatch)
		r.Get("/flashcards", fh.List)
		r.Get("/flashcards/{id}", fh.Get)
		r.Put("/flashcards/{id}", fh.Update)
		r.Delete("/flashcards/{id}", fh.Delete)
	})
	s.router = r
	return s
}

// do sends a request as userID; uuid.Nil sends it unauthenticated.
func (s *testServer) do(t *testing.T, method, path string, body any, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	ctx := shared.WithTraceID(req.Context(), "test-trace")
	if userID != uuid.Nil {
		ctx = context.WithValue(ctx, shared.UserIDContextKey, userID)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req.WithContext(ctx))
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, w)
}

func intPtr(n int) *int { return &n }

