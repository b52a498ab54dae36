// Package keycache provides a process-local, TTL-bounded cache for transient
// plaintext keys.
//
// The cache bridges the legacy server-side decryption path and client-side
// envelope encryption: after a user authenticates, their decrypted key is held
// here briefly so that legacy content can be served without re-prompting for
// credentials. Absence of an entry means such content cannot be served until
// the user re-authenticates.
//
// The cache is deliberately process-local. In a multi-process deployment each
// process holds an independent cache; this is a correctness/security tradeoff
// (plaintext keys never cross a process boundary or touch shared storage) and
// must not be silently centralized into an external store. It is also
// non-authoritative: lock state of a safe is always answered from session
// storage, never from here.
package keycache

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// entry holds a cached key and its absolute expiry.
type entry struct {
	key       []byte
	expiresAt time.Time
}

// Cache is an in-memory, TTL-bounded map from user id to a transient plaintext
// key. It is constructed once at process start and passed by handle to every
// consumer; there is no package-level instance.
//
// Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]entry
	now     func() time.Time
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		entries: make(map[uuid.UUID]entry),
		now:     time.Now,
	}
}

// Set stores a copy of key for userID, replacing any previous entry.
// The entry expires ttl from now; a non-positive ttl stores nothing and
// clears any existing entry.
func (c *Cache) Set(userID uuid.UUID, key []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		c.deleteLocked(userID)
		return
	}

	buf := make([]byte, len(key))
	copy(buf, key)

	c.entries[userID] = entry{
		key:       buf,
		expiresAt: c.now().Add(ttl),
	}
}

// Get returns a copy of the cached key for userID, or false if no live entry
// exists. Expired entries are removed on access.
func (c *Cache) Get(userID uuid.UUID) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[userID]
	if !ok {
		return nil, false
	}

	if !c.now().Before(e.expiresAt) {
		c.deleteLocked(userID)
		return nil, false
	}

	buf := make([]byte, len(e.key))
	copy(buf, e.key)
	return buf, true
}

// Clear removes the entry for userID, zeroing the stored key. Idempotent.
func (c *Cache) Clear(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteLocked(userID)
}

// Len reports the number of entries currently held, including entries that
// have expired but not yet been evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// deleteLocked removes and zeroes an entry. Caller must hold c.mu.
func (c *Cache) deleteLocked(userID uuid.UUID) {
	if e, ok := c.entries[userID]; ok {
		for i := range e.key {
			e.key[i] = 0
		}
		delete(c.entries, userID)
	}
}
