// Package keylock provides read/write mutexes addressed by key. Entries are reference
// counted and dropped once nobody holds or waits for them, so idle keys cost nothing.
package keylock

import "sync"

type entry struct {
	mu   sync.RWMutex
	refs int
}

type Set[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*entry
}

func New[K comparable]() *Set[K] {
	return &Set[K]{entries: make(map[K]*entry)}
}

func (s *Set[K]) acquire(key K) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.refs++
	return e
}

func (s *Set[K]) release(key K, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(s.entries, key)
	}
}

// Lock blocks until the key is held exclusively and returns the matching unlock func.
func (s *Set[K]) Lock(key K) (unlock func()) {
	e := s.acquire(key)
	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		s.release(key, e)
	}
}

// RLock blocks until the key is held in shared mode.
func (s *Set[K]) RLock(key K) (unlock func()) {
	e := s.acquire(key)
	e.mu.RLock()
	return func() {
		e.mu.RUnlock()
		s.release(key, e)
	}
}

// Len reports how many keys are currently held or awaited.
func (s *Set[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
