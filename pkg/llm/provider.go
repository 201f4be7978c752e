package llm

import (
	"context"
	"fmt"
)

// Message represents a chat turn in a provider-agnostic format.
// Role is "user" or "model".
type Message struct {
	Role    string
	Content string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type Result struct {
	Text  string
	Model string
	Usage Usage
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(topP float64) Option {
	return func(o *Options) {
		o.TopP = topP
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ApplyOptions resolves opts on top of the default generation settings.
func ApplyOptions(opts ...Option) *Options {
	options := &Options{
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		MaxTokens:   DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

const (
	DefaultTemperature = 0.4
	DefaultTopP        = 0.9
	DefaultMaxTokens   = 1024
)

// LLMProvider defines the contract for any LLM backend.
type LLMProvider interface {
	Name() string

	// Chat sends the conversation to the model. The last history entry is
	// the turn being answered.
	Chat(ctx context.Context, systemPrompt string, history []Message, options ...Option) (*Result, error)
}

// ProviderError is returned by backends when the remote API rejects a call.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.RateLimited() {
		return fmt.Sprintf("%s: rate limit exceeded (429)", e.Provider)
	}
	return fmt.Sprintf("%s: API request failed with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == 429
}
