package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process variant of the store, suitable for tests and
// single-instance development. Same contract as RedisStore, including state
// expiry.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]string
	states map[string]stateEntry

	// now is swappable so tests can control expiry.
	now func() time.Time
}

type stateEntry struct {
	pending   PendingAuth
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]string),
		states: make(map[string]stateEntry),
		now:    time.Now,
	}
}

func (s *MemoryStore) SaveToken(_ context.Context, userID, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = accessToken
	return nil
}

func (s *MemoryStore) GetToken(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[userID]
	if !ok {
		return "", ErrNotFound
	}
	return tok, nil
}

func (s *MemoryStore) DeleteToken(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}

func (s *MemoryStore) SaveState(_ context.Context, state string, pending PendingAuth, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = stateEntry{pending: pending, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) GetState(_ context.Context, state string) (PendingAuth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.states[state]
	if !ok {
		return PendingAuth{}, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.states, state)
		return PendingAuth{}, ErrNotFound
	}
	return entry.pending, nil
}

func (s *MemoryStore) DeleteState(_ context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, state)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
