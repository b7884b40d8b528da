// Package kv provides a versioned key/value store with a conditional-write
// primitive. It is the only shared-state discipline in the system: a write
// succeeds only if the key's version is unchanged since the caller read it.
package kv

import "context"

// NoVersion is the version reported for an absent key. Passing it to
// PutIfUnchanged asserts the key must still be absent at write time.
const NoVersion int64 = 0

// Store is a cross-process key/value store with optimistic concurrency.
type Store interface {
	// Get returns the current value and version token for a key.
	// An absent key yields a nil value and NoVersion, not an error.
	Get(ctx context.Context, key string) ([]byte, int64, error)

	// PutIfUnchanged writes value only if the key's version still equals
	// version. On success it returns the new version and true; if another
	// writer got there first it returns false with no error.
	PutIfUnchanged(ctx context.Context, key string, value []byte, version int64) (int64, bool, error)
}
