package globalstate

import (
	gserrors "github.com/vango-dev/globalstate/internal/errors"
	"github.com/vango-dev/globalstate/pkg/suspense"
)

// Create builds a store holding initial and the binding views use to read
// it.
func Create[T any](initial T, opts ...Option) (*Binding[T], *Store[T]) {
	s := newStore[T](opts)
	s.value = initial
	s.loaded = true
	s.suspense = suspense.NewHandlerWithValue(initial, s.waitHooks())

	s.logger.Debug("globalstate: store created", "store", s.name)
	return &Binding[T]{store: s}, s
}

// CreateFunc builds a store whose starting value comes from init, which
// runs exactly once before CreateFunc returns. If init fails, no store is
// built and the error is returned as E101. A panic in init propagates.
func CreateFunc[T any](init func() (T, error), opts ...Option) (*Binding[T], *Store[T], error) {
	initial, err := init()
	if err != nil {
		cfg := buildSettings(opts)
		return nil, nil, gserrors.New("E101").WithStore(cfg.name).Wrap(err)
	}

	b, s := Create(initial, opts...)
	return b, s, nil
}

// CreateDeferred builds a store with no value. Get returns the zero value
// and suspendable reads suspend until the first Set.
func CreateDeferred[T any](opts ...Option) (*Binding[T], *Store[T]) {
	s := newStore[T](opts)
	s.suspense = suspense.NewHandler[T](s.waitHooks())

	s.logger.Debug("globalstate: deferred store created", "store", s.name)
	return &Binding[T]{store: s}, s
}
