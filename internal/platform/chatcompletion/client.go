package chatcompletion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/KKuznik/10x-cards/internal/generation"
)

// maxResponseBytes caps how much of a reply is read.
const maxResponseBytes = 4 << 20

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client calls POST {base}/chat/completions once per Generate.
type Client struct {
	opts       Options
	httpClient *http.Client
	logger     *slog.Logger
}

var _ generation.Provider = (*Client)(nil)

// New creates a Client. timeout bounds each request; zero means no limit
// beyond the caller's context.
func New(opts Options, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidArgument)
	}
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", generation.ErrInvalidArgument)
	}
	if opts.Name == "" {
		opts.Name = "chat-completions"
	}

	return &Client{
		opts:       opts,
		httpClient: &http.Client{Timeout: timeout},
		logger: logger.With(
			slog.String("component", "chat_completion_provider"),
			slog.String("provider", opts.Name),
		),
	}, nil
}

// Generate implements generation.Provider.
func (c *Client) Generate(ctx context.Context, sourceText, model string) ([]generation.Proposal, error) {
	if err := generation.ValidateArgs(c.opts.Name, sourceText, model); err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: generation.SystemPrompt},
			{Role: "user", Content: generation.UserPrompt(sourceText)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, generation.TransportFailure(c.opts.Name, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.opts.Headers {
		req.Header.Set(k, v)
	}

	c.logger.DebugContext(ctx, "sending chat completion request",
		slog.String("model", model),
		slog.Int("source_length", len(sourceText)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, generation.TransportFailure(c.opts.Name, err)
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, generation.TransportFailure(c.opts.Name, readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "chat completion request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("model", model))
		return nil, generation.Unavailable(c.opts.Name, resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, generation.Malformed(c.opts.Name, "failed to decode chat completion", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, generation.Malformed(c.opts.Name, "no choices in response", nil)
	}

	proposals, err := generation.ParseProposals(c.opts.Name, parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "chat completion succeeded",
		slog.String("model", model),
		slog.Int("proposals", len(proposals)))
	return proposals, nil
}
