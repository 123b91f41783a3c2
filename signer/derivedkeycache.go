package signer

import (
	"sync"
	"time"
)

// Derived key caches, one entry per region/service lookup key. An entry is
// valid while the access key ID matches and the signing time stays on the
// same day as the cached derivation.
// Reference: AWS SDK v4 signer internal/v4/cache.go derivedKeyCache

// derivedKeyCacheNoThr is the non-thread-safe cache. The caller ensures
// single-goroutine access; Config.ThreadSafety false selects it.
type derivedKeyCacheNoThr struct {
	values map[string]derivedKey
}

func newDerivedKeyCacheNoThr() *derivedKeyCacheNoThr {
	return &derivedKeyCacheNoThr{
		values: make(map[string]derivedKey),
	}
}

// get retrieves a cached key if it exists and is valid.
func (c *derivedKeyCacheNoThr) get(key string, accessKeyID string, t time.Time) ([]byte, bool) {
	entry, ok := c.values[key]
	if !ok {
		return nil, false
	}
	if entry.accessKeyID != accessKeyID {
		return nil, false
	}
	if !isSameDay(t, entry.date) {
		return nil, false
	}
	return entry.key, true
}

// set stores a derived key in the cache.
func (c *derivedKeyCacheNoThr) set(key string, accessKeyID string, t time.Time, k []byte) {
	c.values[key] = derivedKey{
		accessKeyID: accessKeyID,
		date:        t,
		key:         k,
	}
}

// derivedKeyCacheThr is the thread-safe cache, guarded by a RWMutex.
// Config.ThreadSafety true selects it.
type derivedKeyCacheThr struct {
	mu     sync.RWMutex
	values map[string]derivedKey
}

func newDerivedKeyCacheThr() *derivedKeyCacheThr {
	return &derivedKeyCacheThr{
		values: make(map[string]derivedKey),
	}
}

// get retrieves a cached key if it exists and is valid.
func (c *derivedKeyCacheThr) get(key string, accessKeyID string, t time.Time) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.values[key]
	if !ok {
		return nil, false
	}
	if entry.accessKeyID != accessKeyID {
		return nil, false
	}
	if !isSameDay(t, entry.date) {
		return nil, false
	}
	return entry.key, true
}

// set stores a derived key in the cache.
func (c *derivedKeyCacheThr) set(key string, accessKeyID string, t time.Time, k []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = derivedKey{
		accessKeyID: accessKeyID,
		date:        t,
		key:         k,
	}
}
