// Package view is a small host runtime for store consumers.
//
// It provides the three capabilities a binding needs from its host:
// per-view state that survives re-renders (hook slots), setup and teardown
// once per view instance (OnCleanup and Dispose), and cooperative
// suspension (Suspend, which re-queues the view when the wait resolves).
//
//	rt := view.NewRuntime()
//	v := rt.Mount(func(v *view.View) {
//	    n := counter.Use(v).Must()
//	    fmt.Println(n)
//	})
//	store.Set(1)
//	rt.Flush() // re-renders v
//	v.Dispose()
package view
