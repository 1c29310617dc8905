// Package scripted provides a deterministic gateway that replays a fixed
// sequence of responses. It drives loop tests and CLI dry runs.
package scripted

import (
	"context"
	"errors"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/tailored-agentic-units/goagent/core/protocol"
)

// ErrScriptExhausted is returned once every scripted response has been used.
var ErrScriptExhausted = errors.New("scripted gateway: no responses left")

// Response is one scripted outcome. A non-nil Err makes the call fail.
type Response struct {
	Text string
	Err  error
}

// Text is shorthand for a successful response.
func Text(s string) Response {
	return Response{Text: s}
}

// Fail is shorthand for a failing response.
func Fail(err error) Response {
	return Response{Err: err}
}

// Gateway replays responses in order and records every request it sees.
type Gateway struct {
	mu        sync.Mutex
	responses []Response
	next      int
	requests  [][]protocol.Message
}

func New(responses ...Response) *Gateway {
	return &Gateway{responses: responses}
}

// Texts builds a Gateway whose responses all succeed.
func Texts(texts ...string) *Gateway {
	responses := make([]Response, len(texts))
	for i, t := range texts {
		responses[i] = Text(t)
	}
	return New(responses...)
}

func (g *Gateway) Invoke(ctx context.Context, messages []protocol.Message) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests = append(g.requests, slices.Clone(messages))

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g.next >= len(g.responses) {
		return "", ErrScriptExhausted
	}
	r := g.responses[g.next]
	g.next++
	if r.Err != nil {
		return "", r.Err
	}
	return r.Text, nil
}

// Stream yields the next response split after each space.
func (g *Gateway) Stream(ctx context.Context, messages []protocol.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		text, err := g.Invoke(ctx, messages)
		if err != nil {
			yield("", err)
			return
		}
		for _, chunk := range strings.SplitAfter(text, " ") {
			if chunk == "" {
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// Calls returns how many times the gateway was invoked.
func (g *Gateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

// Requests returns a copy of every conversation received, in order.
func (g *Gateway) Requests() [][]protocol.Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([][]protocol.Message, len(g.requests))
	for i, r := range g.requests {
		out[i] = slices.Clone(r)
	}
	return out
}

// Prompts returns the content of the last message of each request.
func (g *Gateway) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.requests))
	for _, r := range g.requests {
		if len(r) == 0 {
			out = append(out, "")
			continue
		}
		out = append(out, r[len(r)-1].Content)
	}
	return out
}

// Remaining reports how many scripted responses are unused.
func (g *Gateway) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.responses) - g.next
}
