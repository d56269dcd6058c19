package chatcompletion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KKuznik/10x-cards/internal/config"
	"github.com/KKuznik/10x-cards/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceText = "The French Revolution began in 1789."

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
	})
	return string(b)
}

func newTestClient(t *testing.T, srv *httptest.Server, timeout time.Duration) *Client {
	t.Helper()
	opts, err := OptionsFromConfig(config.LLMConfig{
		Provider: PresetOpenRouter,
		APIKey:   "sk-test",
		BaseURL:  srv.URL + "/",
		Referer:  "https://10xcards.example.com",
		AppTitle: "10xCards",
	})
	require.NoError(t, err)

	c, err := New(opts, timeout, testLogger())
	require.NoError(t, err)
	return c
}

func TestClient_GenerateSuccess(t *testing.T) {
	var got chatRequest
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		headers = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, completion("```json\n{\"flashcards\":[{\"front\":\"When?\",\"back\":\"1789\"}]}\n```"))
	}))
	defer srv.Close()

	proposals, err := newTestClient(t, srv, time.Second).Generate(context.Background(), sourceText, "openai/gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, []generation.Proposal{{Front: "When?", Back: "1789"}}, proposals)

	assert.Equal(t, "Bearer sk-test", headers.Get("Authorization"))
	assert.Equal(t, "https://10xcards.example.com", headers.Get("HTTP-Referer"))
	assert.Equal(t, "10xCards", headers.Get("X-Title"))

	assert.Equal(t, "openai/gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, generation.SystemPrompt, got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, sourceText)
}

func TestClient_GenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"model overloaded"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, time.Second).Generate(context.Background(), sourceText, "openai/gpt-4o-mini")
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrProviderUnavailable)
	assert.False(t, generation.IsTimeout(err))
	assert.True(t, generation.IsRetryable(err))

	var pe *generation.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusInternalServerError, pe.StatusCode)
	assert.Contains(t, pe.Body, "model overloaded")
}

func TestClient_GenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newTestClient(t, srv, 50*time.Millisecond).Generate(context.Background(), sourceText, "openai/gpt-4o-mini")
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrProviderUnavailable)
	assert.True(t, generation.IsTimeout(err))
}

func TestClient_GenerateMalformed(t *testing.T) {
	tests := map[string]string{
		"not json":        "this is not json",
		"no choices":      `{"choices":[]}`,
		"prose content":   completion("Sure! Here are some flashcards."),
		"empty flashcard": completion(`{"flashcards":[{"front":"","back":""}]}`),
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv, time.Second).Generate(context.Background(), sourceText, "openai/gpt-4o-mini")
			assert.ErrorIs(t, err, generation.ErrMalformedResponse)
		})
	}
}

func TestClient_GenerateInvalidArguments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()
	c := newTestClient(t, srv, time.Second)

	_, err := c.Generate(context.Background(), "", "openai/gpt-4o-mini")
	assert.ErrorIs(t, err, generation.ErrInvalidArgument)
	_, err = c.Generate(context.Background(), sourceText, " ")
	assert.ErrorIs(t, err, generation.ErrInvalidArgument)
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := OptionsFromConfig(config.LLMConfig{Provider: PresetOpenAI, APIKey: "k", Referer: "https://x.io"})
	require.NoError(t, err)
	assert.Equal(t, OpenAIBaseURL, opts.BaseURL)
	assert.Empty(t, opts.Headers)

	opts, err = OptionsFromConfig(config.LLMConfig{Provider: PresetOpenRouter, APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, OpenRouterBaseURL, opts.BaseURL)

	_, err = OptionsFromConfig(config.LLMConfig{Provider: "gemini"})
	assert.Error(t, err)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{APIKey: "k", BaseURL: "http://x"}, time.Second, nil)
	assert.Error(t, err)
	_, err = New(Options{BaseURL: "http://x"}, time.Second, testLogger())
	assert.ErrorIs(t, err, generation.ErrInvalidArgument)
	_, err = New(Options{APIKey: "k"}, time.Second, testLogger())
	assert.ErrorIs(t, err, generation.ErrInvalidArgument)
}
