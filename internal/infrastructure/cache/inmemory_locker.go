package cache

import (
	"context"
	"sync"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// lease represents a held lock with expiration
type lease struct {
	token     uint64
	expiresAt time.Time
}

// InMemoryLocker implements Locker using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryLocker struct {
	mu        sync.Mutex
	leases    map[string]lease
	nextToken uint64
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryLocker creates a new in-memory locker.
// It starts a background goroutine to clean up expired leases.
func NewInMemoryLocker() *InMemoryLocker {
	l := &InMemoryLocker{
		leases:   make(map[string]lease),
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Acquire takes the lease on key, retrying until wait elapses or ctx is done
func (l *InMemoryLocker) Acquire(ctx context.Context, key string, ttl, wait time.Duration) (func(), error) {
	deadline := time.Now().Add(wait)
	for {
		if token, ok := l.tryAcquire(key, ttl); ok {
			return func() { l.release(key, token) }, nil
		}
		if err := waitForRetry(ctx, deadline); err != nil {
			return nil, err
		}
	}
}

func (l *InMemoryLocker) tryAcquire(key string, ttl time.Duration) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if held, exists := l.leases[key]; exists && now.Before(held.expiresAt) {
		return 0, false
	}

	l.nextToken++
	l.leases[key] = lease{token: l.nextToken, expiresAt: now.Add(ttl)}
	return l.nextToken, true
}

// release drops the lease only if it still belongs to token
func (l *InMemoryLocker) release(key string, token uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, exists := l.leases[key]; exists && held.token == token {
		delete(l.leases, key)
	}
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (l *InMemoryLocker) Close() error {
	l.closeOnce.Do(func() {
		close(l.stopChan)
		l.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired leases
func (l *InMemoryLocker) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *InMemoryLocker) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, held := range l.leases {
		if now.After(held.expiresAt) {
			delete(l.leases, key)
		}
	}
}

// Size returns the number of leases held (for testing/monitoring)
func (l *InMemoryLocker) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.leases)
}

// Ensure InMemoryLocker implements Locker
var _ shared.Locker = (*InMemoryLocker)(nil)
