// Package telemetry instruments stores.
//
// A store reports its lifecycle through the Hooks interface. Two
// implementations ship with the package:
//
//   - Prometheus: counters, gauges and a histogram per store name
//   - OpenTelemetry: one span per mutation
//
// Combine them with Multi:
//
//	hooks := telemetry.Multi(
//	    telemetry.NewPrometheus(telemetry.WithRegistry(reg)),
//	    telemetry.NewOpenTelemetry(),
//	)
//	bind, store := globalstate.Create(0, globalstate.WithTelemetry(hooks))
package telemetry
