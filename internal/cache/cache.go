// Package cache memoizes derived analytics views.
//
// Entries are keyed by the ledger epoch and version they were computed from,
// so a mutation never needs to invalidate anything: the next read simply
// misses. The epoch keeps entries written by another process, or before a
// restart, from matching a version number that names a different state.
package cache

import (
	"context"
	"fmt"
)

// Cache stores computed views of type T.
// Implementations treat every failure as a miss; a cache is never authoritative.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (*T, bool)
	Set(ctx context.Context, key string, value *T)
}

// Key builds the cache key for a view of kind computed at a ledger epoch and
// version for one subject (a user or group ID).
func Key(kind, epoch string, version uint64, subject string) string {
	return fmt.Sprintf("splitsense:%s:%s:v%d:%s", kind, epoch, version, subject)
}

// Nop is a Cache that never stores anything.
type Nop[T any] struct{}

func (Nop[T]) Get(context.Context, string) (*T, bool) { return nil, false }
func (Nop[T]) Set(context.Context, string, *T) {}
