// Package keylock serializes compound operations bound to one logical key.
//
// Registry hands out one mutual exclusion lock per key, created on first
// reference. Acquisitions of distinct keys never block each other.
// Locks are retained for the registry lifetime: the intended key space is a
// bounded set of protected resources, so the table does not need cleanup.
package keylock

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrTimeout reports acquisition that did not finish within the caller
// deadline. Recoverable: the guarded state is untouched, the caller may
// retry or surface the contention.
var ErrTimeout = errors.New("lock acquire timed out")

type Registry struct {
	// mu guards only table mutation, never the per key critical sections.
	mu    sync.Mutex
	locks map[string]keyLock
}

// keyLock is a binary semaphore. Channel based, so acquisition can be
// bounded by a timer.
type keyLock chan struct{}

func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]keyLock)}
}

// Acquire blocks until the key lock is taken, but no longer than timeout.
// The returned guard must be released on every exit path:
//
//	g, err := r.Acquire(key, timeout)
//	if err != nil {
//		return err
//	}
//	defer g.Release()
//
// Non-positive timeout fails immediately unless the lock is free.
func (r *Registry) Acquire(key string, timeout time.Duration) (*Guard, error) {
	l := r.lock(key)
	select {
	case l <- struct{}{}:
		return &Guard{lock: l, key: key}, nil
	default:
	}
	if timeout <= 0 {
		return nil, errors.Wrapf(ErrTimeout, "key %q", key)
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case l <- struct{}{}:
		return &Guard{lock: l, key: key}, nil
	case <-timer.C:
		return nil, errors.Wrapf(ErrTimeout, "key %q", key)
	}
}

// With runs f under the key lock, releasing it on every exit path.
func (r *Registry) With(key string, timeout time.Duration, f func() error) error {
	g, err := r.Acquire(key, timeout)
	if err != nil {
		return err
	}
	defer g.Release()
	return f()
}

// lock returns the key lock, creating it on first reference.
func (r *Registry) lock(key string) keyLock {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[key]
	if !ok {
		l = make(keyLock, 1)
		r.locks[key] = l
	}
	return l
}

// Guard represents a held key lock.
type Guard struct {
	lock keyLock
	key  string
}

// Key returns the key the guard is holding.
func (g *Guard) Key() string { return g.key }

// Release releases the held lock. Second release panics.
func (g *Guard) Release() {
	if g.lock == nil {
		panic("keylock: release of released guard")
	}
	<-g.lock
	g.lock = nil
}
