package adapter

import (
	"context"
	"time"
)

// SchedulerLock single-flights the catch-up run across processes. Only the
// holder of the lock may execute a catch-up pass.
type SchedulerLock interface {
	// Acquire attempts to take the lock for at most ttl. It returns false
	// without error when another holder owns the lock.
	Acquire(ctx context.Context, ttl time.Duration) (bool, error)

	// Release releases the lock if this instance still holds it.
	Release(ctx context.Context) error
}
