package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/goagent/prompt"
)

func TestParse_Render(t *testing.T) {
	tmpl, err := prompt.Parse("Task: {task}\nPrevious: {content}\nAgain: {task}", "task", "content")
	require.NoError(t, err)

	got := tmpl.Render(map[string]string{"task": "sum", "content": "3"})
	assert.Equal(t, "Task: sum\nPrevious: 3\nAgain: sum", got)
	assert.Equal(t, []string{"task", "content"}, tmpl.Placeholders())
}

func TestParse_EscapedBraces(t *testing.T) {
	tmpl, err := prompt.Parse("- `{{tool_name}}[{{tool_input}}]` for {question}", "question")
	require.NoError(t, err)

	got := tmpl.Render(map[string]string{"question": "q"})
	assert.Equal(t, "- `{tool_name}[{tool_input}]` for q", got)
}

func TestRender_ValuesAreNotRescanned(t *testing.T) {
	tmpl := prompt.MustParse("{task}|{content}", "task", "content")

	got := tmpl.Render(map[string]string{"task": "{content}", "content": "x"})
	assert.Equal(t, "{content}|x", got)
}

func TestRender_MissingValueIsEmpty(t *testing.T) {
	tmpl := prompt.MustParse("a{task}b", "task")
	assert.Equal(t, "ab", tmpl.Render(nil))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		allowed []string
		wantErr error
	}{
		{"unknown placeholder", "{oops}", []string{"task"}, prompt.ErrUnknownPlaceholder},
		{"unclosed brace", "hello {task", []string{"task"}, prompt.ErrMalformedTemplate},
		{"single closing brace", "hello } world", nil, prompt.ErrMalformedTemplate},
		{"empty placeholder", "{}", nil, prompt.ErrMalformedTemplate},
		{"invalid name", "{a-b}", []string{"a-b"}, prompt.ErrMalformedTemplate},
		{"leading digit", "{1x}", []string{"1x"}, prompt.ErrMalformedTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := prompt.Parse(tt.text, tt.allowed...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { prompt.MustParse("{nope}") })
}

func TestTemplate_ZeroValue(t *testing.T) {
	var tmpl prompt.Template
	assert.Equal(t, "", tmpl.Render(map[string]string{"x": "y"}))
	assert.Empty(t, tmpl.Placeholders())
}

func TestTemplate_Source(t *testing.T) {
	src := "Q: {question}"
	tmpl := prompt.MustParse(src, "question")
	assert.Equal(t, src, tmpl.Source())
}
