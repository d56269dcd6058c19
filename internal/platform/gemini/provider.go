package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KKuznik/10x-cards/internal/config"
	"github.com/KKuznik/10x-cards/internal/generation"
	"google.golang.org/genai"
)

// ProviderName identifies this provider in logs and errors.
const ProviderName = "gemini"

// contentGenerator is the part of *genai.Models the provider calls.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Provider generates flashcard proposals with a Gemini model.
type Provider struct {
	models  contentGenerator
	timeout time.Duration
	logger  *slog.Logger
}

var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a Gemini client from cfg.
func NewProvider(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidArgument)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newProvider(client.Models, timeout, logger), nil
}

func newProvider(models contentGenerator, timeout time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		models:  models,
		timeout: timeout,
		logger:  logger.With(slog.String("component", "gemini_provider")),
	}
}

// Generate implements generation.Provider.
func (p *Provider) Generate(ctx context.Context, sourceText, model string) ([]generation.Proposal, error) {
	if err := generation.ValidateArgs(ProviderName, sourceText, model); err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: generation.SystemPrompt}},
		},
	}

	p.logger.DebugContext(ctx, "calling Gemini API",
		slog.String("model", model),
		slog.Int("source_length", len(sourceText)))

	resp, err := p.models.GenerateContent(ctx, model, genai.Text(generation.UserPrompt(sourceText)), cfg)
	if err != nil {
		return nil, classifyError(err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	proposals, err := generation.ParseProposals(ProviderName, text)
	if err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "Gemini API call successful",
		slog.String("model", model),
		slog.Int("proposals", len(proposals)))
	return proposals, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", generation.Malformed(ProviderName, "no candidates in response", nil)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.Malformed(ProviderName, "content blocked by safety filters", nil)
	}
	if candidate.Content == nil {
		return "", generation.Malformed(ProviderName, "empty content in response", nil)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}

func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return generation.Unavailable(ProviderName, apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return generation.Unavailable(ProviderName, apiErrPtr.Code, apiErrPtr.Message)
	}
	return generation.TransportFailure(ProviderName, err)
}
