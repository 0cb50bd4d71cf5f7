package suspense

import (
	"context"
	"sync"
)

// Handle is a pending wait: a latch that is resolved exactly once with the
// first produced value. Once resolved, every Wait returns immediately.
type Handle[T any] struct {
	val   T
	ready chan struct{}
	once  sync.Once

	mu        sync.Mutex
	callbacks []func()
}

func newHandle[T any]() *Handle[T] {
	return &Handle[T]{ready: make(chan struct{})}
}

// resolve publishes v and runs the registered callbacks on the caller's
// goroutine. Later calls are no-ops.
func (h *Handle[T]) resolve(v T) {
	h.once.Do(func() {
		h.val = v
		close(h.ready)

		h.mu.Lock()
		callbacks := h.callbacks
		h.callbacks = nil
		h.mu.Unlock()

		for _, fn := range callbacks {
			fn()
		}
	})
}

// Done returns a channel that is closed when the handle resolves.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.ready
}

// Resolved reports whether the handle has been resolved.
func (h *Handle[T]) Resolved() bool {
	select {
	case <-h.ready:
		return true
	default:
		return false
	}
}

// Wait blocks until the handle resolves or ctx is done.
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-h.ready:
		return h.val, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// OnResolve registers fn to run when the handle resolves.
// If the handle is already resolved, fn runs immediately.
func (h *Handle[T]) OnResolve(fn func()) {
	if fn == nil {
		return
	}

	h.mu.Lock()
	if !h.Resolved() {
		h.callbacks = append(h.callbacks, fn)
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	fn()
}
