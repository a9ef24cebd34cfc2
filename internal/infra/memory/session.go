package infra_memory

import (
	"sync"
	"time"
)

// SessionCache is the single-process stand-in for the redis session cache.
type SessionCache struct {
	mu      sync.Mutex
	entries map[string]sessionEntry
	now     func() time.Time
}

type sessionEntry struct {
	value     string
	expiresAt time.Time
}

func NewSessionCache() *SessionCache {
	return &SessionCache{
		entries: make(map[string]sessionEntry),
		now:     time.Now,
	}
}

func (c *SessionCache) Set(key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = sessionEntry{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}

// Get returns "" for missing or expired keys.
func (c *SessionCache) Get(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return "", nil
	}
	return e.value, nil
}

func (c *SessionCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}
