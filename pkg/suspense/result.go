package suspense

import "fmt"

// Result is the outcome of a suspendable read: either Ready with a value or
// Pending with the handle that will resolve once a value is produced.
type Result[T any] struct {
	value  T
	handle *Handle[T]
	ready  bool
}

// Ready returns a Result carrying v.
func Ready[T any](v T) Result[T] {
	return Result[T]{value: v, ready: true}
}

// Pending returns a Result that waits on h.
func Pending[T any](h *Handle[T]) Result[T] {
	return Result[T]{handle: h}
}

// IsReady reports whether the result carries a value.
func (r Result[T]) IsReady() bool {
	return r.ready
}

// Value returns the value and true when ready, or the zero value and false.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.ready
}

// Handle returns the pending wait, or nil for a ready result.
func (r Result[T]) Handle() *Handle[T] {
	return r.handle
}

// Must returns the value or panics when the result is pending.
func (r Result[T]) Must() T {
	if !r.ready {
		panic("suspense: Must called on a pending result")
	}
	return r.value
}

// String implements fmt.Stringer.
func (r Result[T]) String() string {
	if r.ready {
		return fmt.Sprintf("Ready(%v)", r.value)
	}
	return "Pending"
}
