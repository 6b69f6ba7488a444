// Package store provides the string-keyed blob store backing trail records
// and the saved-plans ledger.
package store

import "context"

// KVStore is an opaque string-keyed value store. Key enumeration order is
// unspecified; callers must not depend on it.
type KVStore interface {
	// Get returns the value for key. The second return is false when the
	// key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes value under key, overwriting any prior value.
	Set(ctx context.Context, key, value string) error
	// Keys lists all keys beginning with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Close releases the backing resources.
	Close() error
}
