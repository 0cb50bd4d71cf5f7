// Package updater provides the fan-out half of a shared store: a set of
// listeners and a Broadcast that hands each of them the newest value.
//
// Usage:
//
//	u := updater.New[int]()
//	stop := u.RegisterFunc(func(v int) { fmt.Println("got", v) })
//	u.Broadcast(1) // prints "got 1"
//	stop()
//	u.Broadcast(2) // nothing
//
// Listeners are keyed on ID, so the registry is a true set. Broadcast works
// on a snapshot of the set; a listener that unregisters itself mid-pass does
// not disturb delivery to the others.
package updater
