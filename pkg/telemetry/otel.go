package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for store spans.
const defaultTracerName = "globalstate"

// OTelConfig configures the OpenTelemetry hooks.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "globalstate").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer

	// Filter determines which stores are traced.
	// If nil, all stores are traced.
	Filter func(store string) bool
}

// OTelOption configures the OpenTelemetry hooks.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) OTelOption {
	return func(c *OTelConfig) {
		c.Tracer = tracer
	}
}

// WithStoreFilter sets a filter function for stores.
func WithStoreFilter(filter func(store string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// OpenTelemetry implements Hooks by tracing every mutation as a span named
// "globalstate.set". Suspension and resolution each produce a zero-length
// span ("globalstate.suspend", "globalstate.resolve").
type OpenTelemetry struct {
	tracer trace.Tracer
	filter func(string) bool
}

// NewOpenTelemetry returns tracing hooks. Without WithTracer the tracer is
// resolved from the global provider, so configure it first:
//
//	otel.SetTracerProvider(tp)
func NewOpenTelemetry(opts ...OTelOption) *OpenTelemetry {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}

	return &OpenTelemetry{tracer: tracer, filter: config.Filter}
}

func (o *OpenTelemetry) traced(store string) bool {
	return o.filter == nil || o.filter(store)
}

// SetStarted implements Hooks.
func (o *OpenTelemetry) SetStarted(store string) func(int, error) {
	if !o.traced(store) {
		return func(int, error) {}
	}

	_, span := o.tracer.Start(context.Background(), "globalstate.set",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("globalstate.store", store)),
	)

	return func(notified int, err error) {
		span.SetAttributes(attribute.Int("globalstate.notified", notified))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

// ObserversChanged implements Hooks.
func (o *OpenTelemetry) ObserversChanged(string, int) {}

// Suspended implements Hooks.
func (o *OpenTelemetry) Suspended(store string) {
	if !o.traced(store) {
		return
	}
	_, span := o.tracer.Start(context.Background(), "globalstate.suspend",
		trace.WithAttributes(attribute.String("globalstate.store", store)),
	)
	span.End()
}

// Resolved implements Hooks.
func (o *OpenTelemetry) Resolved(store string) {
	if !o.traced(store) {
		return
	}
	_, span := o.tracer.Start(context.Background(), "globalstate.resolve",
		trace.WithAttributes(attribute.String("globalstate.store", store)),
	)
	span.End()
}

// ObserverPanicked implements Hooks.
func (o *OpenTelemetry) ObserverPanicked(string) {}
