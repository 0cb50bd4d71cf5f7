package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vango-dev/globalstate"
	gserrors "github.com/vango-dev/globalstate/internal/errors"
	"github.com/vango-dev/globalstate/pkg/telemetry"
	"github.com/vango-dev/globalstate/pkg/view"
)

// benchConfig describes one benchmark scenario.
type benchConfig struct {
	Views       int
	Sets        int
	Suspendable bool
	Isolate     bool
}

func (c benchConfig) validate() error {
	if c.Views < 0 {
		return gserrors.New("E201").Wrap(fmt.Errorf("views must be >= 0, got %d", c.Views))
	}
	if c.Sets < 1 {
		return gserrors.New("E201").Wrap(fmt.Errorf("sets must be >= 1, got %d", c.Sets))
	}
	return nil
}

// benchResult summarizes a run.
type benchResult struct {
	Views         int
	Sets          int
	Renders       int
	Notifications int
	Elapsed       time.Duration
	Final         int
}

func (r benchResult) print(w io.Writer) {
	perSet := time.Duration(0)
	if r.Sets > 0 {
		perSet = r.Elapsed / time.Duration(r.Sets)
	}
	fmt.Fprintf(w, "views:         %d\n", r.Views)
	fmt.Fprintf(w, "sets:          %d\n", r.Sets)
	fmt.Fprintf(w, "notifications: %d\n", r.Notifications)
	fmt.Fprintf(w, "renders:       %d\n", r.Renders)
	fmt.Fprintf(w, "final value:   %d\n", r.Final)
	fmt.Fprintf(w, "elapsed:       %s (%s per set)\n", r.Elapsed, perSet)
}

// bench is a store with a runtime full of views reading it.
type bench struct {
	runtime *view.Runtime
	store   *globalstate.Store[int]
	views   []*view.View
}

func newBench(cfg benchConfig, logger *slog.Logger, hooks telemetry.Hooks) *bench {
	opts := []globalstate.Option{
		globalstate.WithName("bench"),
		globalstate.WithLogger(logger),
		globalstate.WithTelemetry(hooks),
		globalstate.Suspendable(cfg.Suspendable),
	}
	if cfg.Isolate {
		opts = append(opts, globalstate.WithObserverIsolation())
	}

	var (
		binding *globalstate.Binding[int]
		store   *globalstate.Store[int]
	)
	if cfg.Suspendable {
		binding, store = globalstate.CreateDeferred[int](opts...)
	} else {
		binding, store = globalstate.Create(0, opts...)
	}

	b := &bench{runtime: view.NewRuntime(), store: store}
	for i := 0; i < cfg.Views; i++ {
		b.views = append(b.views, b.runtime.Mount(func(v *view.View) {
			binding.Use(v)
		}))
	}
	return b
}

// step applies one increment and flushes the re-renders it caused.
func (b *bench) step() int {
	b.store.Update(func(n int) int { return n + 1 })
	return b.runtime.Flush()
}

func (b *bench) close() {
	b.runtime.DisposeAll()
}

func runBench(cfg benchConfig, logger *slog.Logger, hooks telemetry.Hooks) (benchResult, error) {
	if err := cfg.validate(); err != nil {
		return benchResult{}, err
	}

	b := newBench(cfg, logger, hooks)
	defer b.close()

	res := benchResult{Views: cfg.Views, Sets: cfg.Sets}
	start := time.Now()
	for i := 0; i < cfg.Sets; i++ {
		res.Notifications += b.store.Observers()
		res.Renders += b.step()
	}
	res.Elapsed = time.Since(start)
	res.Final = b.store.Get()

	return res, nil
}
