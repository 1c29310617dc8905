package session

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/tailored-agentic-units/goagent/core/protocol"
)

type memorySession struct {
	id          string
	maxMessages int
	messages    []protocol.Message
	mu          sync.RWMutex
}

// NewMemorySession creates a Session backed by an in-memory slice.
// The session is assigned a unique UUIDv7 identifier. maxMessages bounds the
// log, dropping the oldest messages first; zero means unbounded.
func NewMemorySession(maxMessages int) Session {
	return &memorySession{
		id:          uuid.Must(uuid.NewV7()).String(),
		maxMessages: maxMessages,
	}
}

func (s *memorySession) ID() string {
	return s.id
}

func (s *memorySession) AddMessage(msg protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	if s.maxMessages > 0 && len(s.messages) > s.maxMessages {
		s.messages = slices.Clone(s.messages[len(s.messages)-s.maxMessages:])
	}
}

func (s *memorySession) Messages() []protocol.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages)
}

func (s *memorySession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *memorySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}
