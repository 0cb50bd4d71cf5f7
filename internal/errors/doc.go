// Package errors provides coded, structured errors for globalstate.
//
// Every error carries a code (e.g. "E101") that maps to a category, a short
// message and a longer explanation. The underlying cause is kept in Wrapped,
// so errors.Is and errors.As see through it.
//
// # Codes
//
//   - E101: store initializer failed
//   - E102: update function failed
//   - E103: observer panicked during broadcast
//   - E104: wait for a value was canceled
//   - E105: binding used without a view
//
// # Usage
//
//	err := errors.New("E102").Wrap(cause).WithStore("cart")
//	fmt.Println(err.FormatCompact())
//	// cart: E102: Update function failed
package errors
