// Package globalstate is a shared-state container for reactive views.
//
// A store holds one value outside any view. Views read it through a
// binding and are re-rendered whenever the value changes; code outside
// views (event handlers, timers, goroutines) reads and writes it through
// the store handle.
//
//	var counter, counterStore = globalstate.Create(0)
//
//	func Counter(v *view.View) {
//	    n := counter.Use(v).Must()
//	    fmt.Println("count:", n)
//	}
//
//	counterStore.Update(func(n int) int { return n + 1 })
//
// # Suspendable reads
//
// A store created with Suspendable(true), or a Use call passing it, reads
// through the suspend handler. Before the store has a value the result is
// Pending and the view is suspended; the first Set resolves the wait and
// re-queues the view.
//
//	user, userStore := globalstate.CreateDeferred[*User](globalstate.Suspendable(true))
//
//	func Profile(v *view.View) {
//	    u, ok := user.Use(v).Value()
//	    if !ok {
//	        return // suspended, re-rendered after userStore.Set
//	    }
//	    fmt.Println(u.Name)
//	}
//
// # Notification
//
// Every Set notifies every observer, even when the value did not change.
// Set runs the suspend resolution before the broadcast, and both finish
// before Set returns.
package globalstate
