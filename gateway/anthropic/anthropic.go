// Package anthropic implements gateway.Gateway over the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"iter"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/gateway"
)

const defaultMaxTokens = 1024

// Gateway streams message completions from Claude models.
type Gateway struct {
	client      sdk.Client
	model       string
	temperature float64
	maxTokens   int
}

func New(cfg gateway.Config) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("anthropic gateway: %w", err)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if timeout := cfg.Timeout(); timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Gateway{
		client:      sdk.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (g *Gateway) Model() string {
	return g.model
}

func (g *Gateway) Invoke(ctx context.Context, messages []protocol.Message) (string, error) {
	return gateway.Collect(g.Stream(ctx, messages))
}

func (g *Gateway) Stream(ctx context.Context, messages []protocol.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		params, ok := g.params(messages)
		if !ok {
			yield("", gateway.ErrEmptyConversation)
			return
		}

		stream := g.client.Messages.NewStreaming(ctx, params)
		defer stream.Close()

		for stream.Next() {
			event := stream.Current()
			delta, ok := event.AsAny().(sdk.ContentBlockDeltaEvent)
			if !ok {
				continue
			}
			text, ok := delta.Delta.AsAny().(sdk.TextDelta)
			if !ok || text.Text == "" {
				continue
			}
			if !yield(text.Text, nil) {
				return
			}
		}

		if err := stream.Err(); err != nil {
			yield("", fmt.Errorf("anthropic stream failed: %w", err))
		}
	}
}

func (g *Gateway) params(messages []protocol.Message) (sdk.MessageNewParams, bool) {
	system, chat := convertMessages(messages)
	if len(chat) == 0 {
		return sdk.MessageNewParams{}, false
	}

	params := sdk.MessageNewParams{
		Model:       sdk.Model(g.model),
		MaxTokens:   int64(g.maxTokens),
		Messages:    chat,
		Temperature: sdk.Float(g.temperature),
	}
	if len(system) > 0 {
		params.System = system
	}
	return params, true
}

func convertMessages(messages []protocol.Message) ([]sdk.TextBlockParam, []sdk.MessageParam) {
	var system []sdk.TextBlockParam
	chat := make([]sdk.MessageParam, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case protocol.RoleSystem:
			if msg.Content != "" {
				system = append(system, sdk.TextBlockParam{Text: msg.Content})
			}
		case protocol.RoleAssistant:
			chat = append(chat, sdk.NewAssistantMessage(sdk.NewTextBlock(msg.Content)))
		default:
			chat = append(chat, sdk.NewUserMessage(sdk.NewTextBlock(msg.Content)))
		}
	}
	return system, chat
}
