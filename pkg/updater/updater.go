package updater

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// globalIDCounter is the source of listener identities.
var globalIDCounter uint64

// NextID returns the next unique listener ID.
// IDs are monotonically increasing and never reused.
func NextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// Listener is anything that wants to receive broadcast values.
type Listener[T any] interface {
	// Notify delivers the newest value.
	Notify(value T)

	// ID returns the identity used as the set key.
	ID() uint64
}

// funcListener adapts a plain callback to Listener.
type funcListener[T any] struct {
	id uint64
	fn func(T)
}

func (f *funcListener[T]) Notify(value T) { f.fn(value) }
func (f *funcListener[T]) ID() uint64     { return f.id }

// Func wraps fn in a Listener with a fresh identity.
// Two Func calls with the same callback yield two distinct listeners.
func Func[T any](fn func(T)) Listener[T] {
	return &funcListener[T]{id: NextID(), fn: fn}
}

// PanicError describes a listener that panicked during an isolated broadcast.
type PanicError struct {
	ListenerID uint64
	Value      any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("updater: listener %d panicked: %v", e.ListenerID, e.Value)
}

// Option configures an Updater.
type Option func(*config)

type config struct {
	isolate bool
	onPanic func(listenerID uint64, recovered any)
}

// WithIsolation makes Broadcast recover listener panics and keep delivering
// to the remaining listeners. onPanic may be nil.
func WithIsolation(onPanic func(listenerID uint64, recovered any)) Option {
	return func(c *config) {
		c.isolate = true
		c.onPanic = onPanic
	}
}

// Updater is a registry of listeners plus a broadcast operation.
// The registry is a set keyed on listener ID.
type Updater[T any] struct {
	listeners map[uint64]Listener[T]
	mu        sync.RWMutex

	isolate bool
	onPanic func(uint64, any)
}

// New creates an empty Updater.
func New[T any](opts ...Option) *Updater[T] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Updater[T]{
		listeners: make(map[uint64]Listener[T]),
		isolate:   cfg.isolate,
		onPanic:   cfg.onPanic,
	}
}

// Register adds l to the set and returns a function that removes exactly l.
// The returned function is idempotent. Registering an ID that is already
// present is a no-op, and the returned function still removes it.
func (u *Updater[T]) Register(l Listener[T]) (unregister func()) {
	if l == nil {
		return func() {}
	}

	id := l.ID()
	u.mu.Lock()
	if _, ok := u.listeners[id]; !ok {
		u.listeners[id] = l
	}
	u.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			u.mu.Lock()
			delete(u.listeners, id)
			u.mu.Unlock()
		})
	}
}

// RegisterFunc is shorthand for Register(Func(fn)).
func (u *Updater[T]) RegisterFunc(fn func(T)) (unregister func()) {
	return u.Register(Func(fn))
}

// Len returns the number of registered listeners.
func (u *Updater[T]) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.listeners)
}

// Broadcast notifies every registered listener with value.
//
// The set is copied before dispatch, so listeners may register or
// unregister (themselves or others) while the pass runs. Order is not
// defined. Without isolation a panicking listener aborts the pass and the
// panic reaches the caller; with isolation every failure is recovered and
// the joined failures are returned.
func (u *Updater[T]) Broadcast(value T) error {
	// Copy listeners while holding lock
	u.mu.RLock()
	subs := make([]Listener[T], 0, len(u.listeners))
	for _, l := range u.listeners {
		subs = append(subs, l)
	}
	u.mu.RUnlock()

	if !u.isolate {
		for _, l := range subs {
			l.Notify(value)
		}
		return nil
	}

	var errs []error
	for _, l := range subs {
		if err := u.notifyIsolated(l, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (u *Updater[T]) notifyIsolated(l Listener[T], value T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{ListenerID: l.ID(), Value: r}
			if u.onPanic != nil {
				u.onPanic(l.ID(), r)
			}
		}
	}()
	l.Notify(value)
	return nil
}
