package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStateStore keeps pending OAuth states in process memory, keyed by session
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]pendingState
	now    func() time.Time
}

type pendingState struct {
	value string
	// zero when the state never expires
	expires time.Time
}

func (p pendingState) expired(now time.Time) bool {
	return !p.expires.IsZero() && now.After(p.expires)
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]pendingState), now: time.Now}
}

// Save stores state for sessionID, replacing any attempt already pending for that
// session. A ttl of zero keeps the state until it is taken.
func (s *MemoryStateStore) Save(_ context.Context, sessionID, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, p := range s.states {
		if p.expired(now) {
			delete(s.states, id)
		}
	}
	p := pendingState{value: state}
	if ttl > 0 {
		p.expires = now.Add(ttl)
	}
	s.states[sessionID] = p
	return nil
}

func (s *MemoryStateStore) Take(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.states[sessionID]
	if !ok {
		return "", nil
	}
	delete(s.states, sessionID)
	if p.expired(s.now()) {
		return "", nil
	}
	return p.value, nil
}
