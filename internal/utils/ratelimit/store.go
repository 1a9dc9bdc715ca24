package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCategory is the rate used when a category has no rate of its own.
const DefaultCategory = "default"

// Store manages one limiter per client and category.
type Store struct {
	limiters map[string]*Limiter
	rates    map[string]Rate
	mu       sync.RWMutex

	idleTimeout time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewStore creates a new store for managing rate limiters.
//
// Parameters:
//   - defaultRate: The default rate limit for clients
//   - cleanupInterval: How often limiters idle for longer than the interval are evicted
//
// Returns:
//   - A configured limiter store; call Close to stop its cleanup goroutine
func NewStore(defaultRate Rate, cleanupInterval time.Duration) *Store {
	store := newStore(defaultRate, cleanupInterval, time.Now)
	go store.cleanupRoutine(cleanupInterval)
	return store
}

func newStore(defaultRate Rate, idleTimeout time.Duration, now func() time.Time) *Store {
	return &Store{
		limiters:    make(map[string]*Limiter),
		rates:       map[string]Rate{DefaultCategory: defaultRate},
		idleTimeout: idleTimeout,
		now:         now,
		stop:        make(chan struct{}),
	}
}

// GetLimiter returns the limiter for a client within a category, creating it on first use.
func (s *Store) GetLimiter(clientID string, category string) *Limiter {
	key := category + "|" + clientID

	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()
	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have created it meanwhile.
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	rate, ok := s.rates[category]
	if !ok {
		rate = s.rates[DefaultCategory]
	}

	limiter = newLimiterWithClock(rate.RequestsPerSecond, rate.Burst, s.now)
	s.limiters[key] = limiter
	return limiter
}

// SetRate sets a rate limit for a specific category.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// Len returns the number of tracked limiters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Close stops the cleanup goroutine.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) cleanupRoutine(interval time.Duration) {
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

// cleanup evicts limiters that have been idle for longer than idleTimeout.
func (s *Store) cleanup() {
	cutoff := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, limiter := range s.limiters {
		if limiter.LastUsed().Before(cutoff) {
			delete(s.limiters, key)
			evicted++
		}
	}

	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Int("remaining", len(s.limiters)).Msg("Rate limiter cleanup")
	}
}
