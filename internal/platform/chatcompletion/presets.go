package chatcompletion

import (
	"fmt"
	"strings"

	"github.com/KKuznik/10x-cards/internal/config"
)

// Preset names accepted in llm.provider.
const (
	PresetOpenRouter = "openrouter"
	PresetOpenAI     = "openai"
)

// Default endpoints for each preset.
const (
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	OpenAIBaseURL     = "https://api.openai.com/v1"
)

// Options configures a Client.
type Options struct {
	Name    string
	BaseURL string
	APIKey  string
	// Headers are sent with every request in addition to auth and
	// content-type.
	Headers map[string]string
}

// OptionsFromConfig resolves the preset named by cfg.Provider. An explicit
// cfg.BaseURL overrides the preset endpoint.
func OptionsFromConfig(cfg config.LLMConfig) (Options, error) {
	opts := Options{
		Name:    cfg.Provider,
		APIKey:  cfg.APIKey,
		Headers: map[string]string{},
	}

	switch cfg.Provider {
	case PresetOpenRouter:
		opts.BaseURL = OpenRouterBaseURL
		if cfg.Referer != "" {
			opts.Headers["HTTP-Referer"] = cfg.Referer
		}
		if cfg.AppTitle != "" {
			opts.Headers["X-Title"] = cfg.AppTitle
		}
	case PresetOpenAI:
		opts.BaseURL = OpenAIBaseURL
	default:
		return Options{}, fmt.Errorf("unsupported chat completion provider %q", cfg.Provider)
	}

	if cfg.BaseURL != "" {
		opts.BaseURL = cfg.BaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return opts, nil
}
