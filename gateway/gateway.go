// Package gateway defines the Completion Gateway contract: the external
// collaborator that turns a conversation into generated text.
//
// The orchestration loops only ever see a blocking call that yields one text
// value or an error. Streaming providers implement Streamer as well; Collect
// and Streaming fold their fragments into the same single value.
package gateway

import (
	"context"
	"iter"
	"strings"

	"github.com/tailored-agentic-units/goagent/core/protocol"
)

// Gateway generates a completion for an ordered conversation. A non-nil
// error is the failure sentinel; callers treat it as "no text".
type Gateway interface {
	Invoke(ctx context.Context, messages []protocol.Message) (string, error)
}

// Streamer yields successive text fragments of one completion. The
// concatenation of all fragments equals what Invoke would return. A failure
// is yielded once as a non-nil error, after which the sequence ends.
type Streamer interface {
	Stream(ctx context.Context, messages []protocol.Message) iter.Seq2[string, error]
}

// Func adapts an ordinary function into a Gateway.
type Func func(ctx context.Context, messages []protocol.Message) (string, error)

func (f Func) Invoke(ctx context.Context, messages []protocol.Message) (string, error) {
	return f(ctx, messages)
}

// Collect drains a fragment sequence into one string. On error, the text
// collected so far is discarded.
func Collect(seq iter.Seq2[string, error]) (string, error) {
	var b strings.Builder
	for chunk, err := range seq {
		if err != nil {
			return "", err
		}
		b.WriteString(chunk)
	}
	return b.String(), nil
}

type streaming struct {
	streamer Streamer
	onChunk  func(string)
}

// Streaming adapts a Streamer into a Gateway. onChunk, if non-nil, sees each
// fragment as it arrives; the caller still receives the full text at the end.
func Streaming(s Streamer, onChunk func(chunk string)) Gateway {
	return &streaming{streamer: s, onChunk: onChunk}
}

func (g *streaming) Invoke(ctx context.Context, messages []protocol.Message) (string, error) {
	seq := g.streamer.Stream(ctx, messages)
	if g.onChunk == nil {
		return Collect(seq)
	}
	return Collect(func(yield func(string, error) bool) {
		for chunk, err := range seq {
			if err == nil {
				g.onChunk(chunk)
			}
			if !yield(chunk, err) {
				return
			}
		}
	})
}
