// Copyright (c) Microsoft. All rights reserved.

package agentkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Session holds the conversation state for a multi-turn agent interaction.
// Messages are kept locally in a [MessageStore]; sessions live only for the
// duration of the process.
type Session struct {
	id              string
	store           MessageStore
	contextProvider ContextProvider
}

// SessionOption configures a [Session].
type SessionOption func(*Session)

// WithSessionStore sets the message store for the session.
func WithSessionStore(store MessageStore) SessionOption {
	return func(s *Session) { s.store = store }
}

// WithSessionContextProvider attaches a context provider to the session.
func WithSessionContextProvider(cp ContextProvider) SessionOption {
	return func(s *Session) { s.contextProvider = cp }
}

// NewSession creates a new Session with a generated ID and, unless overridden,
// an in-memory message store.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		id: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewInMemoryStore()
	}
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Store returns the session's message store.
func (s *Session) Store() MessageStore { return s.store }

// ContextProvider returns the session's context provider, if any.
func (s *Session) ContextProvider() ContextProvider { return s.contextProvider }

// Serialize returns the session state as a serializable map.
func (s *Session) Serialize() (map[string]any, error) {
	state := map[string]any{
		"id": s.id,
	}
	storeState, err := s.store.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize store: %w", err)
	}
	state["store"] = storeState
	return state, nil
}

// MessageStore persists conversation messages for a [Session].
type MessageStore interface {
	// ListMessages returns all stored messages in order.
	ListMessages(ctx context.Context) ([]Message, error)

	// AddMessages appends messages to the store.
	AddMessages(ctx context.Context, msgs []Message) error

	// Serialize returns the store's state as a serializable map.
	Serialize() (map[string]any, error)
}

// InMemoryStore is a simple in-memory [MessageStore] safe for concurrent use.
type InMemoryStore struct {
	mu       sync.Mutex
	messages []Message
}

// NewInMemoryStore creates an empty [InMemoryStore].
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) ListMessages(_ context.Context) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]Message, len(s.messages))
	copy(cp, s.messages)
	return cp, nil
}

func (s *InMemoryStore) AddMessages(_ context.Context, msgs []Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msgs...)
	return nil
}

func (s *InMemoryStore) Serialize() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"messages": s.messages,
	}, nil
}
