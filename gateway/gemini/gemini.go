// Package gemini implements gateway.Gateway over the Google GenAI SDK.
package gemini

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/gateway"
)

// Gateway streams content generation from the Gemini API.
type Gateway struct {
	client      *genai.Client
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// New builds a Gateway from cfg. Retries are left to the caller's context
// deadline; the GenAI client has no retry knob.
func New(ctx context.Context, cfg gateway.Config) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("gemini gateway: %w", err)
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gateway{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout(),
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
		system, contents := convertMessages(messages)
		if len(contents) == 0 {
			yield("", gateway.ErrEmptyConversation)
			return
		}

		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, g.generationConfig(system)) {
			if err != nil {
				yield("", fmt.Errorf("gemini stream failed: %w", err))
				return
			}
			if len(resp.Candidates) == 0 {
				continue
			}
			text := collectText(resp.Candidates[0].Content)
			if text == "" {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

func (g *Gateway) generationConfig(system string) *genai.GenerateContentConfig {
	temp := float32(g.temperature)
	cfg := &genai.GenerateContentConfig{Temperature: &temp}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if g.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(g.maxTokens)
	}
	return cfg
}

// convertMessages splits system messages out into a single instruction and
// maps the rest onto user/model contents.
func convertMessages(messages []protocol.Message) (string, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case protocol.RoleSystem:
			system = append(system, msg.Content)
		case protocol.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}

func collectText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
