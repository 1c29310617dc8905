package gateway_test

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/gateway"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type chunkStreamer struct {
	chunks []string
	err    error
}

func (s chunkStreamer) Stream(context.Context, []protocol.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, c := range s.chunks {
			if !yield(c, nil) {
				return
			}
		}
		if s.err != nil {
			yield("", s.err)
		}
	}
}

func TestCollect(t *testing.T) {
	text, err := gateway.Collect(chunkStreamer{chunks: []string{"Thought: ", "a\n", "Action: Finish[b]"}}.Stream(context.Background(), nil))
	require.NoError(t, err)
	assert.Equal(t, "Thought: a\nAction: Finish[b]", text)
}

func TestCollect_ErrorDiscardsPartialText(t *testing.T) {
	boom := errors.New("connection reset")
	text, err := gateway.Collect(chunkStreamer{chunks: []string{"partial"}, err: boom}.Stream(context.Background(), nil))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, text)
}

func TestStreaming_ForwardsChunks(t *testing.T) {
	var seen []string
	gw := gateway.Streaming(chunkStreamer{chunks: []string{"a", "b", "c"}}, func(c string) {
		seen = append(seen, c)
	})

	text, err := gw.Invoke(context.Background(), protocol.InitMessages(protocol.RoleUser, "hi"))
	require.NoError(t, err)
	assert.Equal(t, "abc", text)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestStreaming_NoHandler(t *testing.T) {
	gw := gateway.Streaming(chunkStreamer{chunks: []string{"x", "y"}}, nil)

	text, err := gw.Invoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "xy", text)
}

func TestFunc(t *testing.T) {
	gw := gateway.Func(func(_ context.Context, msgs []protocol.Message) (string, error) {
		return msgs[0].Content + "!", nil
	})

	text, err := gw.Invoke(context.Background(), protocol.InitMessages(protocol.RoleUser, "hey"))
	require.NoError(t, err)
	assert.Equal(t, "hey!", text)
}
