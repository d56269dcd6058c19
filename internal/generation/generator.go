package generation

import (
	"context"
	"fmt"
	"strings"
)

// Proposal is a single front/back pair suggested by a provider.
type Proposal struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Provider generates flashcard proposals from source text.
//
// Implementations make exactly one outbound call per invocation and never
// retry; retry policy belongs to the caller. Failures are reported as
// *ProviderError values that match ErrInvalidArgument, ErrProviderUnavailable
// or ErrMalformedResponse with errors.Is.
type Provider interface {
	Generate(ctx context.Context, sourceText, model string) ([]Proposal, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, sourceText, model string) ([]Proposal, error)

// Generate calls f.
func (f ProviderFunc) Generate(ctx context.Context, sourceText, model string) ([]Proposal, error) {
	return f(ctx, sourceText, model)
}

// ValidateArgs checks the preconditions shared by every provider.
func ValidateArgs(provider, sourceText, model string) error {
	if strings.TrimSpace(sourceText) == "" {
		return InvalidArgument(provider, "source text cannot be empty")
	}
	if strings.TrimSpace(model) == "" {
		return InvalidArgument(provider, "model cannot be empty")
	}
	return nil
}

// String renders a proposal for debug logging.
func (p Proposal) String() string {
	return fmt.Sprintf("%q -> %q", p.Front, p.Back)
}
