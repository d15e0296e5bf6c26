package server

import (
	"sync"

	"github.com/google/uuid"
)

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of a conversation.
type Turn struct {
	Role    string
	Content string
}

type conversation struct {
	id    string
	turns []Turn
}

// ConversationStore keeps each session's conversation in memory. The oldest
// turns are dropped past maxTurns.
type ConversationStore struct {
	mu       sync.Mutex
	maxTurns int
	sessions map[string]*conversation
}

// NewConversationStore creates a store. maxTurns <= 0 means unbounded.
func NewConversationStore(maxTurns int) *ConversationStore {
	return &ConversationStore{
		maxTurns: maxTurns,
		sessions: make(map[string]*conversation),
	}
}

// History returns a copy of the session's turns.
func (s *ConversationStore) History(sessionID string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	return append([]Turn(nil), c.turns...)
}

// Append adds turns to the session's conversation and returns its ID. A
// conversation gets a new ID when it starts or after Clear.
func (s *ConversationStore) Append(sessionID string, turns ...Turn) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.sessions[sessionID]
	if !ok {
		c = &conversation{id: uuid.NewString()}
		s.sessions[sessionID] = c
	}
	c.turns = append(c.turns, turns...)
	if s.maxTurns > 0 && len(c.turns) > s.maxTurns {
		c.turns = append([]Turn(nil), c.turns[len(c.turns)-s.maxTurns:]...)
	}
	return c.id
}

// Clear drops the session's conversation.
func (s *ConversationStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of sessions with a conversation.
func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
