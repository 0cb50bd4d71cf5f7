package globalstate

import (
	"log/slog"

	"github.com/vango-dev/globalstate/pkg/telemetry"
)

// Config is the resolved per-read configuration.
type Config struct {
	// Suspendable makes a binding read through the suspend handler, so a
	// view suspends until the store has produced a value.
	// Default: false.
	Suspendable bool
}

// Option configures a store at creation or a single binding read.
// Only Suspendable is honoured at read time; the store-only options are
// ignored there.
type Option func(*settings)

// settings is one configuration source. Nil pointer fields are undefined
// and do not override earlier sources.
type settings struct {
	suspendable *bool

	name    string
	logger  *slog.Logger
	hooks   telemetry.Hooks
	isolate bool
}

// Suspendable sets the suspendable key.
func Suspendable(enabled bool) Option {
	return func(s *settings) {
		s.suspendable = &enabled
	}
}

// WithName names the store in logs, metrics, traces and errors.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithLogger sets the structured logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithTelemetry sets the instrumentation hooks.
func WithTelemetry(hooks telemetry.Hooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithObserverIsolation recovers observer panics during a broadcast so the
// remaining observers are still notified. Without it a panicking observer
// surfaces to the caller of Set and later observers may be skipped.
func WithObserverIsolation() Option {
	return func(s *settings) {
		s.isolate = true
	}
}

// defaultSettings is the lowest-priority configuration source.
func defaultSettings() settings {
	suspendable := false
	return settings{suspendable: &suspendable}
}

func buildSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// mergeSettings resolves sources in priority order, lowest first. Each key
// takes the value of the last source that defines it.
func mergeSettings(sources ...settings) Config {
	var cfg Config
	for _, src := range sources {
		if src.suspendable != nil {
			cfg.Suspendable = *src.suspendable
		}
	}
	return cfg
}
