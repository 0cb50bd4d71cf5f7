package suspense

import "sync"

// State is the position of a Handler in its state machine.
type State int

const (
	IdleWithoutValue State = iota // no value, nobody waiting
	Waiting                       // no value, a pending wait exists
	IdleWithValue                 // a value is held
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case IdleWithoutValue:
		return "IdleWithoutValue"
	case Waiting:
		return "Waiting"
	case IdleWithValue:
		return "IdleWithValue"
	default:
		return "Unknown"
	}
}

// Handler bridges one logical value to a suspend-until-ready read.
// At most one pending wait exists at a time, and a pending wait never
// coexists with a held value.
type Handler[T any] struct {
	mu      sync.Mutex
	value   T
	has     bool
	version uint64
	pending *Handle[T]

	onWait    func()
	onResolve func()
}

// HandlerOption configures a Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	onWait    func()
	onResolve func()
}

// WithWaitHooks sets callbacks for when a pending wait is created and when
// it is resolved. Either may be nil.
func WithWaitHooks(onWait, onResolve func()) HandlerOption {
	return func(c *handlerConfig) {
		c.onWait = onWait
		c.onResolve = onResolve
	}
}

// NewHandler returns a Handler with no value.
func NewHandler[T any](opts ...HandlerOption) *Handler[T] {
	var cfg handlerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler[T]{onWait: cfg.onWait, onResolve: cfg.onResolve}
}

// NewHandlerWithValue returns a Handler already holding v.
func NewHandlerWithValue[T any](v T, opts ...HandlerOption) *Handler[T] {
	h := NewHandler[T](opts...)
	h.value = v
	h.has = true
	return h
}

// Read returns Ready with the held value, or Pending with the single
// outstanding handle, creating it on the first read without a value.
// Read never leaves the no-value states on its own.
func (h *Handler[T]) Read() Result[T] {
	h.mu.Lock()
	if h.has {
		v := h.value
		h.mu.Unlock()
		return Ready(v)
	}

	created := false
	if h.pending == nil {
		h.pending = newHandle[T]()
		created = true
	}
	pending := h.pending
	h.mu.Unlock()

	if created && h.onWait != nil {
		h.onWait()
	}
	return Pending(pending)
}

// Produce stores v and resolves the pending wait, if any, reporting
// whether one was resolved. Resolution callbacks run on the caller's
// goroutine before Produce returns.
func (h *Handler[T]) Produce(v T) (resolved bool) {
	h.mu.Lock()
	return h.produceLocked(h.version+1, v)
}

// ProduceVersion is Produce for writers that stamp values with an
// increasing version. A value older than the last one produced is dropped,
// so concurrent writers that reach the handler out of order still leave it
// holding the newest value.
func (h *Handler[T]) ProduceVersion(version uint64, v T) (resolved bool) {
	h.mu.Lock()
	if h.has && version <= h.version {
		h.mu.Unlock()
		return false
	}
	return h.produceLocked(version, v)
}

// produceLocked is called with h.mu held and releases it.
func (h *Handler[T]) produceLocked(version uint64, v T) bool {
	h.value = v
	h.has = true
	h.version = version
	pending := h.pending
	h.pending = nil
	h.mu.Unlock()

	if pending == nil {
		return false
	}
	pending.resolve(v)
	if h.onResolve != nil {
		h.onResolve()
	}
	return true
}

// State returns the current state.
func (h *Handler[T]) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case h.has:
		return IdleWithValue
	case h.pending != nil:
		return Waiting
	default:
		return IdleWithoutValue
	}
}

// HasValue reports whether a value has been produced.
func (h *Handler[T]) HasValue() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.has
}

// Pending returns the number of outstanding pending waits (0 or 1).
func (h *Handler[T]) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending != nil {
		return 1
	}
	return 0
}
