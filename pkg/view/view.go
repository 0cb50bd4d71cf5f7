package view

import (
	"sync"
	"sync/atomic"
)

var globalIDCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// RenderFunc renders a view. It is re-invoked every time the view is
// flushed after being marked dirty.
type RenderFunc func(v *View)

// Resumer is a not-yet-resolved wait that a suspended render hands back to
// the host. The host asks to be called back once it resolves.
type Resumer interface {
	OnResolve(fn func())
}

// View is one mounted consumer. It owns hook slots that keep stable
// identity across renders and cleanups that run once when it is disposed.
type View struct {
	id      uint64
	runtime *Runtime
	render  RenderFunc

	// cleanups are teardown functions registered via OnCleanup.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// Hook slot storage, indexed by call order within a render.
	hookSlots   []any
	hookSlotIdx int

	// suspendedOn is the last wait this view asked to be resumed by.
	suspendedOn Resumer

	renderCount atomic.Int64
	dirty       atomic.Bool
	suspended   atomic.Bool
	disposed    atomic.Bool
}

// New creates a detached view that is not managed by a Runtime.
// Callers drive it with Render.
func New(render RenderFunc) *View {
	return &View{
		id:     nextID(),
		render: render,
	}
}

// ID returns the unique identifier for this view.
func (v *View) ID() uint64 {
	return v.id
}

// IsDisposed returns true if the view has been torn down.
func (v *View) IsDisposed() bool {
	return v.disposed.Load()
}

// RenderCount returns how many times the view has rendered.
func (v *View) RenderCount() int {
	return int(v.renderCount.Load())
}

// Dirty reports whether the view is waiting to be re-rendered.
func (v *View) Dirty() bool {
	return v.dirty.Load()
}

// Suspended reports whether the last render suspended.
func (v *View) Suspended() bool {
	return v.suspended.Load()
}

// Render runs the render function once. Disposed views do not render.
func (v *View) Render() {
	if v.disposed.Load() {
		return
	}

	v.dirty.Store(false)
	v.suspended.Store(false)
	v.hookSlotIdx = 0

	if v.render != nil {
		v.render(v)
	}
	v.renderCount.Add(1)
}

// MarkDirty schedules the view for re-render on the next flush.
func (v *View) MarkDirty() {
	if v.disposed.Load() {
		return
	}
	if v.dirty.Swap(true) {
		return
	}
	if v.runtime != nil {
		v.runtime.enqueue(v)
	}
}

// Suspend marks the current render as suspended on r. The view is marked
// dirty when r resolves, so the next flush retries the render. Suspending
// again on the same r does not register a second callback. r must be
// comparable.
func (v *View) Suspend(r Resumer) {
	v.suspended.Store(true)
	if r == nil || r == v.suspendedOn {
		return
	}
	v.suspendedOn = r
	r.OnResolve(v.MarkDirty)
}

// OnCleanup registers fn to run when the view is disposed.
// If the view is already disposed, fn runs immediately.
func (v *View) OnCleanup(fn func()) {
	if v.disposed.Load() {
		fn()
		return
	}

	v.cleanupsMu.Lock()
	defer v.cleanupsMu.Unlock()
	v.cleanups = append(v.cleanups, fn)
}

// UseHookSlot returns the stored value for the current hook slot, or nil
// on the first render. The caller creates its state and calls SetHookSlot.
//
//	slot := v.UseHookSlot()
//	if slot != nil {
//	    return slot.(*state)
//	}
//	s := &state{}
//	v.SetHookSlot(s)
func (v *View) UseHookSlot() any {
	idx := v.hookSlotIdx
	v.hookSlotIdx++

	if idx < len(v.hookSlots) {
		return v.hookSlots[idx]
	}
	return nil
}

// SetHookSlot stores a value in the slot most recently claimed by
// UseHookSlot.
func (v *View) SetHookSlot(value any) {
	v.hookSlots = append(v.hookSlots, value)
}

// Dispose tears the view down. Cleanups run in reverse registration order.
// Calling Dispose more than once has no further effect.
func (v *View) Dispose() {
	if v.disposed.Swap(true) {
		return
	}

	if v.runtime != nil {
		v.runtime.remove(v)
	}

	v.cleanupsMu.Lock()
	cleanups := v.cleanups
	v.cleanups = nil
	v.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	v.hookSlots = nil
	v.suspendedOn = nil
}
