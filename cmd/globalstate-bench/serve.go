package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	gserrors "github.com/vango-dev/globalstate/internal/errors"
	"github.com/vango-dev/globalstate/pkg/telemetry"
)

func serveCmd() *cobra.Command {
	var (
		cfg      benchConfig
		addr     string
		interval time.Duration
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Update a store continuously and expose metrics",
		Long: `Mount --views views on one store and apply an update every
--interval until interrupted. Store metrics are served on /metrics and
the current value on /value.

Examples:
  globalstate-bench serve
  globalstate-bench serve --addr=:9100 --interval=10ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, addr, interval, newLogger(verbose))
		},
	}

	cmd.Flags().IntVar(&cfg.Views, "views", 100, "Number of views reading the store")
	cmd.Flags().BoolVar(&cfg.Suspendable, "suspendable", false, "Start with no value and read through the suspend handler")
	cmd.Flags().BoolVar(&cfg.Isolate, "isolate", false, "Recover observer panics during broadcast")
	cmd.Flags().StringVar(&addr, "addr", ":9090", "Address for the metrics server")
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "Time between updates")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// newRouter builds the HTTP surface of the serve command.
func newRouter(reg *prometheus.Registry, b *bench) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	r.Get("/value", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "%d\n", b.store.Get())
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

func runServe(ctx context.Context, cfg benchConfig, addr string, interval time.Duration, logger *slog.Logger) error {
	cfg.Sets = 1
	if err := cfg.validate(); err != nil {
		return err
	}
	if interval <= 0 {
		return gserrors.New("E201").Wrap(fmt.Errorf("interval must be positive, got %s", interval))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	hooks := telemetry.Multi(
		telemetry.NewPrometheus(telemetry.WithRegistry(reg)),
		telemetry.NewOpenTelemetry(),
	)

	b := newBench(cfg, logger, hooks)
	defer b.close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(reg, b),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("shutting down", "value", b.store.Get())
			return srv.Shutdown(shutdownCtx)
		case err, ok := <-errCh:
			if ok {
				return err
			}
			return nil
		case <-ticker.C:
			b.step()
		}
	}
}
