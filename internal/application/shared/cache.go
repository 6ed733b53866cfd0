package shared

import "context"

// CacheInvalidator evicts cached read models after a write. Invalidation is
// best-effort; a failed eviction must not fail the write that triggered it.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// NoOpInvalidator satisfies CacheInvalidator without a backing cache.
type NoOpInvalidator struct{}

func (NoOpInvalidator) Invalidate(context.Context, ...string) error { return nil }
