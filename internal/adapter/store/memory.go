package store

import (
	"context"
	"sync"
	"time"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

type memoryEntry struct {
	state     domain.CheckoutState
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. It is the default when no Redis URL is configured
// and only suits a single instance.
type MemoryStore struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

var _ domain.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(cfg Config) *MemoryStore {
	return &MemoryStore{
		cfg:      cfg.withDefaults(),
		sessions: make(map[string]memoryEntry),
	}
}

// Get returns a copy of the session, or domain.ErrSessionNotFound when it is unknown or expired.
func (s *MemoryStore) Get(ctx context.Context, id string) (domain.CheckoutState, error) {
	if err := ctx.Err(); err != nil {
		return domain.CheckoutState{}, err
	}

	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return domain.CheckoutState{}, domain.ErrSessionNotFound
	}
	if !s.cfg.Clock.Now().Before(entry.expiresAt) {
		s.mu.Lock()
		// Re-check: a concurrent Save may have refreshed the entry.
		if cur, ok := s.sessions[id]; ok && !s.cfg.Clock.Now().Before(cur.expiresAt) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return domain.CheckoutState{}, domain.ErrSessionNotFound
	}
	return entry.state.Clone(), nil
}

// Save stores a copy of the session and resets its TTL.
func (s *MemoryStore) Save(ctx context.Context, state domain.CheckoutState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if state.ID == "" {
		return domain.WrapInvalidRequest("session id is required")
	}

	s.mu.Lock()
	s.sessions[state.ID] = memoryEntry{
		state:     state.Clone(),
		expiresAt: s.cfg.Clock.Now().Add(s.cfg.TTL),
	}
	s.mu.Unlock()
	return nil
}

// Update applies fn under the store lock, so concurrent updates of one session never interleave.
func (s *MemoryStore) Update(ctx context.Context, id string, fn domain.UpdateFunc) (domain.CheckoutState, error) {
	if err := ctx.Err(); err != nil {
		return domain.CheckoutState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.cfg.Clock.Now()
	entry, ok := s.sessions[id]
	if !ok || !now.Before(entry.expiresAt) {
		delete(s.sessions, id)
		return domain.CheckoutState{}, domain.ErrSessionNotFound
	}

	next, err := fn(entry.state.Clone())
	if err != nil {
		return domain.CheckoutState{}, err
	}
	if next.ID != id {
		return domain.CheckoutState{}, domain.WrapInvalidRequest("session id cannot change from %q to %q", id, next.ID)
	}

	s.sessions[id] = memoryEntry{
		state:     next.Clone(),
		expiresAt: now.Add(s.cfg.TTL),
	}
	return next, nil
}

// Delete removes the session. Deleting an unknown session is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included until swept.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops every expired session and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.cfg.Clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is cancelled.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.cfg.TTL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
