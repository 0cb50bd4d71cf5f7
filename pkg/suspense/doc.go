// Package suspense turns "no value yet" into a cooperative wait.
//
// A Handler holds at most one value. Reading it before anything was
// produced yields a Pending Result whose Handle resolves on the first
// Produce; reading it afterwards yields Ready.
//
//	h := suspense.NewHandler[string]()
//	r := h.Read()        // Pending
//	r.Handle().OnResolve(func() { rerender() })
//	h.Produce("hello")   // resolves the handle, runs rerender
//	h.Read().Must()      // "hello"
//
// Goroutines outside a render loop can block instead:
//
//	v, err := r.Handle().Wait(ctx)
package suspense
