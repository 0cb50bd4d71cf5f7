package telemetry

// Hooks receives store lifecycle events. Implementations must be safe for
// concurrent use; every method is called synchronously from the store
// operation that produced the event.
type Hooks interface {
	// SetStarted is called before a mutation is applied. The returned
	// function is called once the mutation and its broadcast finish, with
	// the number of observers notified and the failure, if any.
	SetStarted(store string) func(notified int, err error)

	// ObserversChanged reports the observer count after a register or
	// unregister.
	ObserversChanged(store string, observers int)

	// Suspended is called when a read creates a pending wait.
	Suspended(store string)

	// Resolved is called when a pending wait is resolved by a produced value.
	Resolved(store string)

	// ObserverPanicked is called for every isolated observer panic.
	ObserverPanicked(store string)
}

var (
	_ Hooks = (*Prometheus)(nil)
	_ Hooks = (*OpenTelemetry)(nil)
)

// Nop returns Hooks that do nothing.
func Nop() Hooks {
	return nopHooks{}
}

type nopHooks struct{}

func (nopHooks) SetStarted(string) func(int, error) { return func(int, error) {} }
func (nopHooks) ObserversChanged(string, int)       {}
func (nopHooks) Suspended(string)                   {}
func (nopHooks) Resolved(string)                    {}
func (nopHooks) ObserverPanicked(string)            {}

// Multi fans every event out to each of hooks in order.
// Nil entries are skipped.
func Multi(hooks ...Hooks) Hooks {
	var list multiHooks
	for _, h := range hooks {
		if h != nil {
			list = append(list, h)
		}
	}
	switch len(list) {
	case 0:
		return Nop()
	case 1:
		return list[0]
	}
	return list
}

type multiHooks []Hooks

func (m multiHooks) SetStarted(store string) func(int, error) {
	finishers := make([]func(int, error), len(m))
	for i, h := range m {
		finishers[i] = h.SetStarted(store)
	}
	return func(notified int, err error) {
		for i := len(finishers) - 1; i >= 0; i-- {
			finishers[i](notified, err)
		}
	}
}

func (m multiHooks) ObserversChanged(store string, observers int) {
	for _, h := range m {
		h.ObserversChanged(store, observers)
	}
}

func (m multiHooks) Suspended(store string) {
	for _, h := range m {
		h.Suspended(store)
	}
}

func (m multiHooks) Resolved(store string) {
	for _, h := range m {
		h.Resolved(store)
	}
}

func (m multiHooks) ObserverPanicked(store string) {
	for _, h := range m {
		h.ObserverPanicked(store)
	}
}
