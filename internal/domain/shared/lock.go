package shared

import (
	"context"
	"time"
)

// Locker hands out short-lived exclusive leases on a key.
// Acquire blocks until the lease is obtained, ctx is done, or wait elapses (ErrLockBusy).
type Locker interface {
	Acquire(ctx context.Context, key string, ttl, wait time.Duration) (release func(), err error)
	Close() error
}
