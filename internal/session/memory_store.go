package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Entries are copied in and
// out so callers never share a Session value.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore creates a store that sweeps expired sessions every cleanupInterval.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := newMemoryStore(time.Now)
	go s.cleanupLoop(cleanupInterval)
	return s
}

func newMemoryStore(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      now,
		stop:     make(chan struct{}),
	}
}

// Get returns a copy of the stored session.
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}

	sess := entry.session
	return &sess, nil
}

// Save stores a copy of the session until ttl elapses.
func (s *MemoryStore) Save(_ context.Context, sess *Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = memoryEntry{
		session:   *sess,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Delete removes a session. Unknown IDs are ignored.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

// cleanup evicts expired sessions.
func (s *MemoryStore) cleanup() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
