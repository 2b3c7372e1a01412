package domain

import "sync"

// MessageState holds the text the talker currently publishes.
// It is shared by the publish loop (reader) and mutation callers (writers).
// A read observes either the initial value or a complete write; last write wins.
type MessageState struct {
	mu      sync.RWMutex
	current string
}

// NewMessageState creates a MessageState holding initial.
func NewMessageState(initial string) *MessageState {
	return &MessageState{current: initial}
}

// Read returns a snapshot of the current message.
func (s *MessageState) Read() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Write replaces the current message.
func (s *MessageState) Write(text string) {
	s.mu.Lock()
	s.current = text
	s.mu.Unlock()
}
