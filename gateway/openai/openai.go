// Package openai implements gateway.Gateway for OpenAI and OpenAI-compatible
// chat completion endpoints (vLLM, Ollama, DeepSeek, ModelScope and the like).
package openai

import (
	"context"
	"fmt"
	"iter"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/gateway"
)

// Gateway streams chat completions through the official SDK.
type Gateway struct {
	client      sdk.Client
	model       string
	temperature float64
	maxTokens   int
}

// New builds a Gateway from cfg. BaseURL selects a compatible endpoint; an
// empty BaseURL targets api.openai.com.
func New(cfg gateway.Config) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("openai gateway: %w", err)
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

	return &Gateway{
		client:      sdk.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Model returns the configured model identifier.
func (g *Gateway) Model() string {
	return g.model
}

func (g *Gateway) Invoke(ctx context.Context, messages []protocol.Message) (string, error) {
	return gateway.Collect(g.Stream(ctx, messages))
}

func (g *Gateway) Stream(ctx context.Context, messages []protocol.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if len(messages) == 0 {
			yield("", gateway.ErrEmptyConversation)
			return
		}

		stream := g.client.Chat.Completions.NewStreaming(ctx, g.params(messages))
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			text := chunk.Choices[0].Delta.Content
			if text == "" {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}

		if err := stream.Err(); err != nil {
			yield("", fmt.Errorf("openai stream failed: %w", err))
		}
	}
}

func (g *Gateway) params(messages []protocol.Message) sdk.ChatCompletionNewParams {
	params := sdk.ChatCompletionNewParams{
		Model:       sdk.ChatModel(g.model),
		Messages:    convertMessages(messages),
		Temperature: sdk.Float(g.temperature),
	}
	if g.maxTokens > 0 {
		params.MaxTokens = sdk.Int(int64(g.maxTokens))
	}
	return params
}

func convertMessages(messages []protocol.Message) []sdk.ChatCompletionMessageParamUnion {
	out := make([]sdk.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case protocol.RoleSystem:
			out = append(out, sdk.SystemMessage(msg.Content))
		case protocol.RoleAssistant:
			out = append(out, sdk.AssistantMessage(msg.Content))
		default:
			out = append(out, sdk.UserMessage(msg.Content))
		}
	}
	return out
}
