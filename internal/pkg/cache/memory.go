package cache

import (
	"context"
	"sync"
	"time"
)

const defaultSweepInterval = time.Minute

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a process-local TTL store. It is safe for concurrent use
// and bounded: when maxEntries is reached, the entry closest to expiry is
// evicted to make room.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int

	stopOnce sync.Once
	stop     chan struct{}
}

// NewMemoryStore creates a memory store capped at maxEntries (0 means 10000)
// and starts a background sweep of expired entries.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 10000
	}

	s := &MemoryStore{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}

	go s.sweepLoop(defaultSweepInterval)

	return s
}

// Get returns the value for key, or ErrMiss if absent or expired
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return "", ErrMiss
	}
	return e.value, nil
}

// Set stores value under key for ttl
func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.evictSoonest()
	}

	s.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes key
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len returns the current entry count, expired entries included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the background sweep
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// evictSoonest drops the entry with the earliest expiry. Caller holds mu.
func (s *MemoryStore) evictSoonest() {
	var victim string
	var soonest time.Time
	for k, e := range s.entries {
		if victim == "" || e.expiresAt.Before(soonest) {
			victim = k
			soonest = e.expiresAt
		}
	}
	if victim != "" {
		delete(s.entries, victim)
	}
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	now := time.Now()
	s.mu.Lock()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.mu.Unlock()
}
