package globalstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	gserrors "github.com/vango-dev/globalstate/internal/errors"
	"github.com/vango-dev/globalstate/pkg/suspense"
	"github.com/vango-dev/globalstate/pkg/telemetry"
	"github.com/vango-dev/globalstate/pkg/updater"
)

var storeCounter uint64

// revision is a value stamped with the store version that assigned it.
// Concurrent writers may deliver revisions out of order; readers that keep
// state compare versions and keep the newest.
type revision[T any] struct {
	version uint64
	value   T
}

// Store owns one shared value. It is the only mutation path: every Set or
// Update assigns the value, resolves any pending suspend wait and then
// broadcasts to every observer, in that order, before returning.
type Store[T any] struct {
	name string

	// value is the current value; loaded is false only for a deferred store
	// that has not been set yet. version increases with every assignment.
	value   T
	loaded  bool
	version uint64
	mu      sync.RWMutex

	// writeMu serializes read-modify-write of value. It is not held while
	// observers run, so observers may call Set.
	writeMu sync.Mutex

	updater  *updater.Updater[revision[T]]
	suspense *suspense.Handler[T]

	config  settings
	logger  *slog.Logger
	hooks   telemetry.Hooks
	isolate bool
}

func newStore[T any](opts []Option) *Store[T] {
	cfg := buildSettings(opts)

	s := &Store[T]{
		name:    cfg.name,
		config:  cfg,
		logger:  cfg.logger,
		hooks:   cfg.hooks,
		isolate: cfg.isolate,
	}
	if s.name == "" {
		s.name = fmt.Sprintf("store-%d", atomic.AddUint64(&storeCounter, 1))
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.hooks == nil {
		s.hooks = telemetry.Nop()
	}

	var uopts []updater.Option
	if s.isolate {
		uopts = append(uopts, updater.WithIsolation(s.observerPanicked))
	}
	s.updater = updater.New[revision[T]](uopts...)

	return s
}

func (s *Store[T]) waitHooks() suspense.HandlerOption {
	return suspense.WithWaitHooks(
		func() {
			s.logger.Debug("globalstate: read suspended", "store", s.name)
			s.hooks.Suspended(s.name)
		},
		func() {
			s.hooks.Resolved(s.name)
		},
	)
}

// Name returns the store name.
func (s *Store[T]) Name() string {
	return s.name
}

// Config returns the creation-time configuration merged over the defaults.
func (s *Store[T]) Config() Config {
	return mergeSettings(defaultSettings(), s.config)
}

// Get returns the current value. It never suspends and has no side effects.
// A deferred store that has not been set returns the zero value.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Loaded reports whether the store holds a value.
func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Observers returns the number of registered observers.
func (s *Store[T]) Observers() int {
	return s.updater.Len()
}

// Set replaces the value and notifies every observer.
func (s *Store[T]) Set(value T) {
	s.mutate(func(T) (T, error) { return value, nil })
}

// Update replaces the value with fn(previous). fn runs exactly once. If fn
// panics the value is left unchanged, nothing is notified and the panic
// reaches the caller. fn must not mutate the store.
func (s *Store[T]) Update(fn func(prev T) T) {
	s.mutate(func(prev T) (T, error) { return fn(prev), nil })
}

// UpdateE is Update for functions that can fail. A returned error leaves
// the store unchanged, notifies nothing and is returned as E102.
func (s *Store[T]) UpdateE(fn func(prev T) (T, error)) error {
	return s.mutate(fn)
}

func (s *Store[T]) mutate(fn func(T) (T, error)) (err error) {
	finish := s.hooks.SetStarted(s.name)
	notified := 0
	var observerErr error
	defer func() {
		if r := recover(); r != nil {
			finish(notified, fmt.Errorf("globalstate: panic during set: %v", r))
			panic(r)
		}
		if err != nil {
			finish(notified, err)
			return
		}
		finish(notified, observerErr)
	}()

	rev, err := s.apply(fn)
	if err != nil {
		return gserrors.New("E102").WithStore(s.name).Wrap(err)
	}

	s.suspense.ProduceVersion(rev.version, rev.value)

	notified = s.updater.Len()
	if berr := s.updater.Broadcast(rev); berr != nil {
		// Each panic was logged by observerPanicked; telemetry sees the set.
		observerErr = gserrors.New("E103").WithStore(s.name).Wrap(berr)
	}
	return nil
}

// apply runs fn against the current value and assigns its result.
// Assignment only happens after fn returns successfully.
func (s *Store[T]) apply(fn func(T) (T, error)) (revision[T], error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next, err := fn(s.Get())
	if err != nil {
		return revision[T]{}, err
	}

	s.mu.Lock()
	s.value = next
	s.loaded = true
	s.version++
	rev := revision[T]{version: s.version, value: next}
	s.mu.Unlock()

	return rev, nil
}

// current returns the value together with the version that assigned it.
func (s *Store[T]) current() revision[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return revision[T]{version: s.version, value: s.value}
}

// Subscribe registers fn for every value set after it returns. The
// returned function unregisters it and is idempotent.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return s.register(updater.Func(func(r revision[T]) { fn(r.value) }))
}

func (s *Store[T]) register(l updater.Listener[revision[T]]) func() {
	unregister := s.updater.Register(l)
	s.hooks.ObserversChanged(s.name, s.updater.Len())

	var once sync.Once
	return func() {
		once.Do(func() {
			unregister()
			n := s.updater.Len()
			s.hooks.ObserversChanged(s.name, n)
			s.logger.Debug("globalstate: observer removed", "store", s.name, "observers", n)
		})
	}
}

// Read performs a suspendable read: Ready with the value, or Pending with
// the wait that the next Set resolves.
func (s *Store[T]) Read() suspense.Result[T] {
	return s.suspense.Read()
}

// WaitReady blocks until the store holds a value or ctx is done. A context
// error is returned as E104.
func (s *Store[T]) WaitReady(ctx context.Context) (T, error) {
	r := s.suspense.Read()
	if v, ok := r.Value(); ok {
		return v, nil
	}

	v, err := r.Handle().Wait(ctx)
	if err != nil {
		var zero T
		return zero, gserrors.New("E104").WithStore(s.name).Wrap(err)
	}
	return v, nil
}

func (s *Store[T]) observerPanicked(listenerID uint64, recovered any) {
	err := gserrors.New("E103").WithStore(s.name).Wrap(fmt.Errorf("observer %d: %v", listenerID, recovered))
	s.logger.Error("globalstate: observer panicked", "store", s.name, "error", err)
	s.hooks.ObserverPanicked(s.name)
}
