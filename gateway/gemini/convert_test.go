package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/tailored-agentic-units/goagent/core/protocol"
)

func TestConvertMessages(t *testing.T) {
	system, contents := convertMessages([]protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, "rule one"),
		protocol.NewMessage(protocol.RoleUser, "question"),
		protocol.NewMessage(protocol.RoleAssistant, "answer"),
		protocol.NewMessage(protocol.RoleSystem, "rule two"),
	})

	assert.Equal(t, "rule one\n\nrule two", system)
	require.Len(t, contents, 2)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, "question", contents[0].Parts[0].Text)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
}

func TestCollectText_SkipsThoughts(t *testing.T) {
	content := &genai.Content{Parts: []*genai.Part{
		{Text: "hidden", Thought: true},
		{Text: "Action: "},
		nil,
		{Text: "Finish[ok]"},
	}}

	assert.Equal(t, "Action: Finish[ok]", collectText(content))
	assert.Empty(t, collectText(nil))
}

func TestGenerationConfig(t *testing.T) {
	g := &Gateway{temperature: 0.5, maxTokens: 128}

	cfg := g.generationConfig("sys")
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.5, *cfg.Temperature, 1e-6)
	assert.Equal(t, int32(128), cfg.MaxOutputTokens)
	require.NotNil(t, cfg.SystemInstruction)

	assert.Nil(t, g.generationConfig("").SystemInstruction)
}
