package globalstate

import (
	"sync"

	gserrors "github.com/vango-dev/globalstate/internal/errors"
	"github.com/vango-dev/globalstate/pkg/suspense"
	"github.com/vango-dev/globalstate/pkg/updater"
	"github.com/vango-dev/globalstate/pkg/view"
)

// Binding is the per-view read side of a store.
type Binding[T any] struct {
	store *Store[T]
}

// Store returns the store this binding reads.
func (b *Binding[T]) Store() *Store[T] {
	return b.store
}

// Use reads the store from inside v's render.
//
// The first Use in a view instance subscribes the view to the store; the
// subscription is removed when the view is disposed. Every broadcast
// updates the view's snapshot and marks it dirty.
//
// The effective config is the defaults, then the store's creation options,
// then overrides. When Suspendable, Use reads through the suspend handler
// and suspends v on a Pending result; otherwise it returns Ready with the
// view's snapshot.
//
// Use panics with E105 if v is nil.
func (b *Binding[T]) Use(v *view.View, overrides ...Option) suspense.Result[T] {
	if v == nil {
		panic(gserrors.New("E105").WithStore(b.store.name))
	}

	st := b.slot(v)

	cfg := mergeSettings(defaultSettings(), b.store.config, buildSettings(overrides))
	if cfg.Suspendable {
		r := b.store.suspense.Read()
		if !r.IsReady() {
			v.Suspend(r.Handle())
		}
		return r
	}
	return suspense.Ready(st.get())
}

// slot returns the view's binding state, subscribing on first use.
func (b *Binding[T]) slot(v *view.View) *bindingState[T] {
	if slot := v.UseHookSlot(); slot != nil {
		return slot.(*bindingState[T])
	}

	st := &bindingState[T]{}
	v.SetHookSlot(st)

	l := &viewListener[T]{id: updater.NextID(), state: st, view: v}
	v.OnCleanup(b.store.register(l))

	// Values are assigned before they are broadcast, so reading after
	// registering cannot miss a concurrent Set.
	st.advance(b.store.current())
	return st
}

// bindingState is the view-local snapshot. It only moves forward: a
// revision older than the one held is ignored.
type bindingState[T any] struct {
	mu       sync.Mutex
	version  uint64
	snapshot T
}

func (s *bindingState[T]) get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// advance stores r unless a newer revision is already held.
func (s *bindingState[T]) advance(r revision[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.version < s.version {
		return false
	}
	s.version = r.version
	s.snapshot = r.value
	return true
}

// viewListener delivers broadcasts into a view's snapshot.
type viewListener[T any] struct {
	id    uint64
	state *bindingState[T]
	view  *view.View
}

func (l *viewListener[T]) Notify(r revision[T]) {
	if l.state.advance(r) {
		l.view.MarkDirty()
	}
}

func (l *viewListener[T]) ID() uint64 {
	return l.id
}
