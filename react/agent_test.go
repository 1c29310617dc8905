package react_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/gateway"
	"github.com/tailored-agentic-units/goagent/gateway/scripted"
	"github.com/tailored-agentic-units/goagent/observability"
	"github.com/tailored-agentic-units/goagent/prompt"
	"github.com/tailored-agentic-units/goagent/react"
	"github.com/tailored-agentic-units/goagent/session"
	"github.com/tailored-agentic-units/goagent/tools"
)

func echoRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	reg := tools.NewRegistry(nil)
	require.NoError(t, reg.Register(tools.New(
		protocol.Tool{Name: "Echo", Description: "returns its input"},
		func(_ context.Context, input string) (string, error) { return input, nil },
	)))
	return reg
}

func newAgent(t *testing.T, cfg react.Config, gw gateway.Gateway, opts ...react.Option) *react.Agent {
	t.Helper()
	a, err := react.New(&cfg, gw, echoRegistry(t), opts...)
	require.NoError(t, err)
	return a
}

func TestRun_EchoThenFinish(t *testing.T) {
	gw := scripted.Texts(
		"Thought: need echo\nAction: Echo[hi]",
		"Thought: done\nAction: Finish[hi]",
	)
	sess := session.NewMemorySession(0)
	a := newAgent(t, react.Config{MaxSteps: 3}, gw, react.WithSession(sess))

	result, err := a.Run(context.Background(), "say hi")
	require.NoError(t, err)

	assert.Equal(t, "hi", result.Answer)
	assert.Equal(t, react.StatusFinished, result.Status)
	assert.Equal(t, 2, result.Calls)
	assert.Equal(t, 2, gw.Calls())

	require.Len(t, result.Steps, 2)
	assert.Equal(t, "hi", result.Steps[0].Observation)
	assert.Equal(t, "need echo", result.Steps[0].Thought)

	prompts := gw.Prompts()
	assert.NotContains(t, prompts[0], "Action: Echo[hi]")
	assert.Contains(t, prompts[1], "Action: Echo[hi]\nObservation: hi")

	assert.Equal(t, []protocol.Message{
		protocol.NewMessage(protocol.RoleUser, "say hi"),
		protocol.NewMessage(protocol.RoleAssistant, "hi"),
	}, sess.Messages())
}

func TestRun_FinishAtStepK(t *testing.T) {
	const maxSteps = 4
	for k := 1; k <= maxSteps; k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			script := make([]string, 0, k)
			for i := 1; i < k; i++ {
				script = append(script, fmt.Sprintf("Thought: step %d\nAction: Echo[%d]", i, i))
			}
			script = append(script, "Action: Finish[answer]")
			gw := scripted.Texts(script...)

			result, err := newAgent(t, react.Config{MaxSteps: maxSteps}, gw).Run(context.Background(), "q")
			require.NoError(t, err)

			assert.Equal(t, "answer", result.Answer)
			assert.Equal(t, k, gw.Calls())
			assert.Equal(t, k, result.Calls)
		})
	}
}

func TestRun_ExhaustsWithFallback(t *testing.T) {
	gw := scripted.Texts("Thought: hmm", "Thought: hmm", "Thought: hmm", "Action: Finish[too late]")
	sess := session.NewMemorySession(0)

	result, err := newAgent(t, react.Config{MaxSteps: 3}, gw, react.WithSession(sess)).Run(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, react.DefaultFallbackAnswer, result.Answer)
	assert.Equal(t, react.StatusExhausted, result.Status)
	assert.Equal(t, 3, gw.Calls())
	assert.Equal(t, 1, gw.Remaining())
	assert.Equal(t, 2, sess.Len())
}

func TestRun_CustomFallback(t *testing.T) {
	gw := scripted.Texts("nothing")

	result, err := newAgent(t, react.Config{MaxSteps: 1, FallbackAnswer: "gave up"}, gw).Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "gave up", result.Answer)
}

func TestRun_GatewayFailureContinues(t *testing.T) {
	rec := &observability.Recorder{}
	gw := scripted.New(
		scripted.Fail(errors.New("503")),
		scripted.Text("Action: Finish[recovered]"),
	)

	result, err := newAgent(t, react.Config{MaxSteps: 3}, gw, react.WithObserver(rec)).Run(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, "recovered", result.Answer)
	assert.Equal(t, 2, result.Calls)
	assert.Empty(t, result.Steps[0].Output)
	assert.Equal(t, 1, rec.Count(react.EventGatewayFailed))
}

func TestRun_AllGatewayCallsFail(t *testing.T) {
	gw := scripted.New()

	result, err := newAgent(t, react.Config{MaxSteps: 2}, gw).Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, react.StatusExhausted, result.Status)
	assert.Equal(t, 2, gw.Calls())
}

func TestRun_UnknownToolObservation(t *testing.T) {
	gw := scripted.Texts("Action: Missing[x]", "Action: Finish[ok]")

	_, err := newAgent(t, react.Config{}, gw).Run(context.Background(), "q")
	require.NoError(t, err)

	assert.Contains(t, gw.Prompts()[1], "Observation: "+tools.NotFoundText("Missing"))
}

func TestRun_NonASCIIToolName(t *testing.T) {
	reg := tools.NewRegistry(nil)
	var got []string
	require.NoError(t, reg.Register(tools.New(
		protocol.Tool{Name: "搜索", Description: "网页搜索"},
		func(_ context.Context, input string) (string, error) {
			got = append(got, input)
			return "晴", nil
		},
	)))

	rec := &observability.Recorder{}
	gw := scripted.Texts("Thought: 查天气\nAction: 搜索[北京天气]", "Action: Finish[ok]")
	a, err := react.New(&react.Config{}, gw, reg, react.WithObserver(rec))
	require.NoError(t, err)

	result, err := a.Run(context.Background(), "北京天气如何")
	require.NoError(t, err)

	assert.Equal(t, "ok", result.Answer)
	assert.Equal(t, []string{"北京天气"}, got)
	assert.Equal(t, react.ActionTool, result.Steps[0].Action.Kind)
	assert.Equal(t, "晴", result.Steps[0].Observation)
	assert.Zero(t, rec.Count(react.EventActionMalformed))
	assert.Contains(t, gw.Prompts()[1], "Action: 搜索[北京天气]\nObservation: 晴")
}

func TestRun_MalformedPolicy(t *testing.T) {
	tests := []struct {
		policy       react.MalformedPolicy
		wantInPrompt bool
	}{
		{react.MalformedSkip, false},
		{react.MalformedObserve, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			rec := &observability.Recorder{}
			gw := scripted.Texts("Action: look it up", "Action: Finish[x]")
			a := newAgent(t, react.Config{MalformedPolicy: tt.policy}, gw, react.WithObserver(rec))

			result, err := a.Run(context.Background(), "q")
			require.NoError(t, err)

			assert.Equal(t, "x", result.Answer)
			assert.Equal(t, 1, rec.Count(react.EventActionMalformed))
			assert.Equal(t, tt.wantInPrompt, strings.Contains(gw.Prompts()[1], "Action: look it up"))
			assert.Equal(t, tt.wantInPrompt, result.Steps[0].Observation != "")
		})
	}
}

func TestRun_RendersTemplate(t *testing.T) {
	gw := scripted.Texts("Action: Echo[a]", "Action: Finish[b]")
	cfg := react.Config{Template: "T:{tools}|Q:{question}|H:{history}|{{literal}}"}

	_, err := newAgent(t, cfg, gw).Run(context.Background(), "what")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"T:Echo: returns its input|Q:what|H:|{literal}",
		"T:Echo: returns its input|Q:what|H:Action: Echo[a]\nObservation: a|{literal}",
	}, gw.Prompts())
}

func TestRun_DefaultTemplate(t *testing.T) {
	gw := scripted.Texts("Action: Finish[x]")

	_, err := newAgent(t, react.Config{}, gw).Run(context.Background(), "what is go?")
	require.NoError(t, err)

	p := gw.Prompts()[0]
	assert.Contains(t, p, "Echo: returns its input")
	assert.Contains(t, p, "**Question:** what is go?")
	assert.Contains(t, p, "`{tool_name}[{tool_input}]`")
}

func TestRun_Events(t *testing.T) {
	rec := &observability.Recorder{}
	gw := scripted.Texts("Action: Echo[a]", "Action: Finish[b]")

	_, err := newAgent(t, react.Config{}, gw, react.WithObserver(rec)).Run(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, []observability.EventType{
		react.EventRunStart,
		react.EventStepStart,
		react.EventGatewayInvoke,
		react.EventToolDispatch,
		react.EventStepStart,
		react.EventGatewayInvoke,
		react.EventTerminal,
	}, rec.Types())

	events := rec.Events()
	runID := events[0].Data["run_id"]
	require.NotEmpty(t, runID)
	for _, e := range events {
		assert.Equal(t, runID, e.Data["run_id"])
		assert.Equal(t, "react.Agent.Run", e.Source)
	}
	assert.Equal(t, "finished", events[len(events)-1].Data["status"])
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	gw := scripted.Texts("Action: Finish[x]")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newAgent(t, react.Config{}, gw).Run(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
	assert.Zero(t, gw.Calls())
}

func TestRun_CancelledDuringCall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gw := gateway.Func(func(ctx context.Context, _ []protocol.Message) (string, error) {
		cancel()
		return "", ctx.Err()
	})

	a, err := react.New(&react.Config{}, gw, nil)
	require.NoError(t, err)

	_, err = a.Run(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Errors(t *testing.T) {
	gw := scripted.New()

	_, err := react.New(&react.Config{}, nil, nil)
	assert.ErrorIs(t, err, react.ErrNilGateway)

	_, err = react.New(&react.Config{Template: "{question} {tool}"}, gw, nil)
	assert.ErrorIs(t, err, prompt.ErrUnknownPlaceholder)

	_, err = react.New(&react.Config{MalformedPolicy: "explode"}, gw, nil)
	assert.ErrorIs(t, err, react.ErrInvalidPolicy)
}

func TestNew_Defaults(t *testing.T) {
	a, err := react.New(nil, scripted.New(), nil)
	require.NoError(t, err)

	assert.Equal(t, react.DefaultConfig(), a.Config())
	assert.NotNil(t, a.Registry())
	assert.Zero(t, a.Registry().Len())
	assert.NotNil(t, a.Session())
}

func TestResult_Transcript(t *testing.T) {
	gw := scripted.Texts("Thought: need echo\nAction: Echo[hi]", "Action: Finish[hi]")

	result, err := newAgent(t, react.Config{}, gw).Run(context.Background(), "q")
	require.NoError(t, err)

	want := "--- 第 1 步 ---\nThought: need echo\nAction: Echo[hi]\nObservation: hi\n\n" +
		"--- 第 2 步 ---\nAction: Finish[hi]\n\n" +
		"--- finished ---\nhi"
	assert.Equal(t, want, result.Transcript())
}
