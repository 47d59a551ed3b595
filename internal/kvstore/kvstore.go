// Package kvstore provides the durable key-value store backing the app
// factory's persistence: generated app HTML, the app index, and the daily
// usage record all live here as string values under string keys.
//
// The store is deliberately minimal: synchronous get/set/delete with no
// transactions. Callers that need multi-key consistency (the artifact store
// writes a record key and an index key per save) accept best-effort
// durability; a crash between the two writes can leave them inconsistent.
package kvstore

import "errors"

var (
	// ErrKeyNotFound indicates the requested key has no value in the store.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCapacityExceeded indicates a write was rejected because it would
	// push the store past its configured capacity ceiling.
	ErrCapacityExceeded = errors.New("store capacity exceeded")
)

// Store is a persistent string-keyed, string-valued mapping.
//
// Implementations must be safe for use from a single process; cross-process
// writers may race (accepted, see package doc).
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(key string) (string, error)

	// Set writes value under key, overwriting any existing value.
	// Returns ErrCapacityExceeded if the write would exceed capacity.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Close releases the backing resources.
	Close() error
}
