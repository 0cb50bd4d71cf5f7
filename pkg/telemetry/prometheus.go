package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus hooks.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "globalstate").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for set duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus hooks.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "globalstate",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Prometheus implements Hooks with Prometheus metrics labelled by store.
//
// Metrics collected:
//   - globalstate_sets_total: mutations by store and status
//   - globalstate_set_duration_seconds: mutation plus broadcast latency
//   - globalstate_notifications_total: observer deliveries
//   - globalstate_observer_panics_total: isolated observer panics
//   - globalstate_observers: registered observers
//   - globalstate_pending_waits: outstanding suspend waits
type Prometheus struct {
	setsTotal      *prometheus.CounterVec
	setDuration    *prometheus.HistogramVec
	notifications  *prometheus.CounterVec
	observerPanics *prometheus.CounterVec
	observers      *prometheus.GaugeVec
	pendingWaits   *prometheus.GaugeVec
}

// NewPrometheus registers the store metrics and returns hooks that update
// them. Registering twice against the same registry panics, as promauto
// does.
func NewPrometheus(opts ...MetricsOption) *Prometheus {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Prometheus{
		setsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sets_total",
			Help:        "Total number of store mutations",
			ConstLabels: config.ConstLabels,
		}, []string{"store", "status"}),

		setDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "set_duration_seconds",
			Help:        "Mutation and broadcast duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"store"}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of observer notifications",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		observerPanics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "observer_panics_total",
			Help:        "Total number of recovered observer panics",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		observers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "observers",
			Help:        "Number of registered observers",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		pendingWaits: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pending_waits",
			Help:        "Number of outstanding suspend waits",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),
	}
}

// SetStarted implements Hooks.
func (p *Prometheus) SetStarted(store string) func(int, error) {
	start := time.Now()
	return func(notified int, err error) {
		p.setDuration.WithLabelValues(store).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
		}
		p.setsTotal.WithLabelValues(store, status).Inc()
		p.notifications.WithLabelValues(store).Add(float64(notified))
	}
}

// ObserversChanged implements Hooks.
func (p *Prometheus) ObserversChanged(store string, observers int) {
	p.observers.WithLabelValues(store).Set(float64(observers))
}

// Suspended implements Hooks.
func (p *Prometheus) Suspended(store string) {
	p.pendingWaits.WithLabelValues(store).Inc()
}

// Resolved implements Hooks.
func (p *Prometheus) Resolved(store string) {
	p.pendingWaits.WithLabelValues(store).Dec()
}

// ObserverPanicked implements Hooks.
func (p *Prometheus) ObserverPanicked(store string) {
	p.observerPanics.WithLabelValues(store).Inc()
}
