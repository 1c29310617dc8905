// Package session keeps an agent's own conversation log: one user/assistant
// exchange per completed run, independent of any loop's internal history.
package session

import (
	"github.com/tailored-agentic-units/goagent/core/protocol"
)

// Session holds an ordered sequence of conversation messages. Implementations
// must be safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// AddMessage appends a message to the conversation history.
	AddMessage(msg protocol.Message)
	// Messages returns a defensive copy of the conversation history.
	Messages() []protocol.Message
	// Len returns the number of messages held.
	Len() int
	// Clear resets the conversation history.
	Clear()
}

// RecordExchange appends a user prompt and the assistant's final answer.
func RecordExchange(s Session, prompt, answer string) {
	s.AddMessage(protocol.NewMessage(protocol.RoleUser, prompt))
	s.AddMessage(protocol.NewMessage(protocol.RoleAssistant, answer))
}
