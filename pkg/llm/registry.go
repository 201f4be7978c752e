package llm

import (
	"context"
	"errors"
	"strings"

	"mindcare-be/internal/constant"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("mindcare-be/pkg/llm")

// Registry resolves a provider identifier to a configured backend.
// Only gemini and anthropic are recognised; a recognised identifier
// without a backend means its API key was not configured.
type Registry struct {
	providers map[string]LLMProvider
	options   []Option
	logger    logger.ILogger
}

func NewRegistry(log logger.ILogger, options []Option, providers ...LLMProvider) *Registry {
	r := &Registry{
		providers: make(map[string]LLMProvider, len(providers)),
		options:   options,
		logger:    log,
	}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Normalize maps an empty identifier to gemini and rejects unknown ones.
func Normalize(providerID string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(providerID))
	switch id {
	case "":
		return constant.ProviderGemini, nil
	case constant.ProviderGemini, constant.ProviderAnthropic:
		return id, nil
	}
	return "", apperror.InvalidInput("unknown provider %q", providerID)
}

// Generate answers userText given the prior history. It returns the name of
// the provider that produced the reply.
func (r *Registry) Generate(ctx context.Context, providerID, systemPrompt string, history []Message, userText string) (*Result, string, error) {
	id, err := Normalize(providerID)
	if err != nil {
		return nil, "", err
	}

	provider, ok := r.providers[id]
	if !ok {
		return nil, "", apperror.Upstream("provider not configured", nil)
	}

	ctx, span := tracer.Start(ctx, "llm.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("llm.provider", id), attribute.Int("llm.history", len(history)))

	turns := make([]Message, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, Message{Role: constant.ChatMessageRoleUser, Content: userText})

	result, err := provider.Chat(ctx, systemPrompt, turns, r.options...)
	if err != nil {
		span.RecordError(err)
		details := map[string]interface{}{"provider": id, "error": err.Error()}
		var pe *ProviderError
		if errors.As(err, &pe) {
			details["status"] = pe.StatusCode
			details["rate_limited"] = pe.RateLimited()
		}
		r.logger.Error("LLM", "Generation failed", details)
		return nil, "", apperror.Upstream("language model call failed", err)
	}

	r.logger.Debug("LLM", "Generation completed", map[string]interface{}{
		"provider":      id,
		"input_tokens":  result.Usage.InputTokens,
		"output_tokens": result.Usage.OutputTokens,
	})
	return result, id, nil
}
