package factory

import (
	"context"
	"fmt"

	"mindcare-be/internal/config"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/llm"
	"mindcare-be/pkg/llm/anthropic"
	"mindcare-be/pkg/llm/gemini"
)

// NewRegistry builds a backend for every provider that has an API key.
// Providers without a key stay unregistered and fail at call time.
func NewRegistry(ctx context.Context, cfg *config.Config, log logger.ILogger) (*llm.Registry, error) {
	var providers []llm.LLMProvider

	if cfg.Keys.Gemini != "" {
		p, err := gemini.NewGeminiProvider(ctx, gemini.Config{
			APIKey:  cfg.Keys.Gemini,
			Model:   cfg.LLM.GeminiModel,
			BaseURL: cfg.LLM.GeminiBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini provider: %w", err)
		}
		providers = append(providers, p)
	} else {
		log.Warn("LLM", "GEMINI_API_KEY not set, gemini provider disabled", nil)
	}

	if cfg.Keys.Anthropic != "" {
		p, err := anthropic.NewAnthropicProvider(anthropic.Config{
			APIKey:  cfg.Keys.Anthropic,
			Model:   cfg.LLM.AnthropicModel,
			BaseURL: cfg.LLM.AnthropicBaseURL,
			Timeout: cfg.App.RequestTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("anthropic provider: %w", err)
		}
		providers = append(providers, p)
	} else {
		log.Warn("LLM", "ANTHROPIC_API_KEY not set, anthropic provider disabled", nil)
	}

	options := []llm.Option{
		llm.WithTemperature(cfg.LLM.Temperature),
		llm.WithTopP(cfg.LLM.TopP),
		llm.WithMaxTokens(cfg.LLM.MaxTokens),
	}
	return llm.NewRegistry(log, options, providers...), nil
}
