package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindcare-be/internal/constant"
	"mindcare-be/pkg/llm"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultModel = "claude-3-5-haiku-latest"

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API host. Empty uses the SDK default.
	BaseURL string
	Timeout time.Duration
}

type AnthropicProvider struct {
	client sdk.Client
	model  string
}

// Ensure AnthropicProvider implements LLMProvider
var _ llm.LLMProvider = &AnthropicProvider{}

func NewAnthropicProvider(cfg Config) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		// failures surface to the caller unretried
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicProvider{
		client: sdk.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

func (p *AnthropicProvider) Name() string {
	return constant.ProviderAnthropic
}

func (p *AnthropicProvider) Chat(ctx context.Context, systemPrompt string, history []llm.Message, opts ...llm.Option) (*llm.Result, error) {
	options := llm.ApplyOptions(opts...)

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]sdk.MessageParam, 0, len(history))
	for _, msg := range history {
		block := sdk.NewTextBlock(msg.Content)
		if msg.Role == constant.ChatMessageRoleModel {
			messages = append(messages, sdk.NewAssistantMessage(block))
		} else {
			messages = append(messages, sdk.NewUserMessage(block))
		}
	}

	params := sdk.MessageNewParams{
		Model:       sdk.Model(model),
		MaxTokens:   int64(options.MaxTokens),
		Messages:    messages,
		Temperature: sdk.Float(options.Temperature),
		TopP:        sdk.Float(options.TopP),
	}
	if systemPrompt != "" {
		params.System = []sdk.TextBlockParam{{Text: systemPrompt}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return nil, &llm.ProviderError{
				Provider:   constant.ProviderAnthropic,
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Error(),
			}
		}
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("anthropic returned no content")
	}

	input := int(resp.Usage.InputTokens)
	output := int(resp.Usage.OutputTokens)
	return &llm.Result{
		Text:  strings.TrimSpace(text.String()),
		Model: model,
		Usage: llm.Usage{
			InputTokens:  input,
			OutputTokens: output,
			TotalTokens:  input + output,
		},
	}, nil
}
