package globalstate

import gserrors "github.com/vango-dev/globalstate/internal/errors"

// Sentinel errors. Compare with errors.Is; a store error matches the
// sentinel with the same code.
var (
	// ErrInit matches initializer failures from CreateFunc.
	ErrInit error = gserrors.New("E101")

	// ErrUpdate matches update function failures from UpdateE.
	ErrUpdate error = gserrors.New("E102")

	// ErrObserverPanic matches the error telemetry hooks receive for a set
	// whose isolated observers panicked.
	ErrObserverPanic error = gserrors.New("E103")

	// ErrNotReady matches a WaitReady that gave up before a value arrived.
	ErrNotReady error = gserrors.New("E104")

	// ErrNoView matches a binding used without a view.
	ErrNoView error = gserrors.New("E105")
)
