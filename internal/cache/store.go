// Package cache provides the durable key-value store backing offline reads.
// Entries live until explicitly invalidated or the store is cleared; there
// is no age-based expiry.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is a stored value with its write timestamp. Entries are owned by the
// store and only reach callers through the resource layer's typed accessors.
type Entry struct {
	Value    json.RawMessage `json:"value"`
	StoredAt time.Time       `json:"storedAt"`
}

// Store is the durable key-value contract. Get never fails on a missing key;
// absence is the ok=false return. Operations on a single key are atomic: a
// reader never observes a half-written entry.
type Store interface {
	// Get returns the entry stored under key, or ok=false if absent.
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Set overwrites any existing entry for key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the exact key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// RemovePrefix deletes every key starting with prefix. A mutation must
	// invalidate all cached list variants of a resource, not just one.
	RemovePrefix(ctx context.Context, prefix string) error

	// Clear wipes the entire store (user-triggered cache reset).
	Clear(ctx context.Context) error
}
