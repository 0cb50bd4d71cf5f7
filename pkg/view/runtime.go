package view

import "sync"

// Runtime mounts views and re-renders the dirty ones on Flush.
// Renders happen on the goroutine that calls Mount or Flush; MarkDirty may
// be called from anywhere.
type Runtime struct {
	mu    sync.Mutex
	views map[uint64]*View
	queue []*View
}

// NewRuntime creates an empty runtime.
func NewRuntime() *Runtime {
	return &Runtime{views: make(map[uint64]*View)}
}

// Mount creates a view, registers it and renders it once.
func (r *Runtime) Mount(render RenderFunc) *View {
	v := New(render)
	v.runtime = r

	r.mu.Lock()
	r.views[v.id] = v
	r.mu.Unlock()

	v.Render()
	return v
}

// Len returns the number of mounted views.
func (r *Runtime) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Pending returns the number of views queued for re-render.
func (r *Runtime) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Flush re-renders every queued view once and returns how many rendered.
// Views dirtied during the flush are left for the next one.
func (r *Runtime) Flush() int {
	r.mu.Lock()
	queue := r.queue
	r.queue = nil
	r.mu.Unlock()

	rendered := 0
	for _, v := range queue {
		if v.IsDisposed() {
			continue
		}
		v.Render()
		rendered++
	}
	return rendered
}

// DisposeAll tears down every mounted view.
func (r *Runtime) DisposeAll() {
	r.mu.Lock()
	views := make([]*View, 0, len(r.views))
	for _, v := range r.views {
		views = append(views, v)
	}
	r.mu.Unlock()

	for _, v := range views {
		v.Dispose()
	}
}

func (r *Runtime) enqueue(v *View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, v)
}

func (r *Runtime) remove(v *View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, v.id)
}
