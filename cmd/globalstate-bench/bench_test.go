package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gserrors "github.com/vango-dev/globalstate/internal/errors"
	"github.com/vango-dev/globalstate/pkg/telemetry"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunBench(t *testing.T) {
	res, err := runBench(benchConfig{Views: 10, Sets: 5}, discardLogger(), telemetry.Nop())
	require.NoError(t, err)

	assert.Equal(t, 5, res.Final)
	assert.Equal(t, 50, res.Notifications)
	assert.Equal(t, 50, res.Renders)

	var buf bytes.Buffer
	res.print(&buf)
	assert.Contains(t, buf.String(), "final value:   5")
}

func TestRunBenchSuspendable(t *testing.T) {
	res, err := runBench(benchConfig{Views: 3, Sets: 2, Suspendable: true}, discardLogger(), telemetry.Nop())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Final)
	assert.Equal(t, 6, res.Renders)
}

func TestBenchConfigValidate(t *testing.T) {
	_, err := runBench(benchConfig{Views: -1, Sets: 1}, discardLogger(), telemetry.Nop())
	assert.ErrorIs(t, err, gserrors.New("E201"))

	_, err = runBench(benchConfig{Views: 1, Sets: 0}, discardLogger(), telemetry.Nop())
	assert.ErrorIs(t, err, gserrors.New("E201"))

	err = runServe(context.Background(), benchConfig{Views: 1}, "127.0.0.1:0", 0, discardLogger())
	assert.ErrorIs(t, err, gserrors.New("E201"))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, benchConfig{Views: 1, Sets: 0}.validate())
	assert.True(t, strings.HasPrefix(buf.String(), "ERROR E201: Invalid benchmark option\n"))
	assert.Contains(t, buf.String(), "cause: sets must be >= 1, got 0")

	buf.Reset()
	cmd := rootCmd()
	cmd.SetArgs([]string{"run", "--views=abc"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	printError(&buf, cmd.Execute())
	assert.True(t, strings.HasPrefix(buf.String(), "ERROR E202: Command failed\n"))
	assert.Contains(t, buf.String(), "--views")
}

func TestRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := telemetry.NewPrometheus(telemetry.WithRegistry(reg))

	b := newBench(benchConfig{Views: 2, Sets: 1}, discardLogger(), hooks)
	defer b.close()
	b.step()
	b.step()

	srv := httptest.NewServer(newRouter(reg, b))
	defer srv.Close()

	get := func(path string) (int, string) {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	code, body := get("/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)

	_, body = get("/value")
	assert.Equal(t, "2\n", body)

	code, body = get("/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `globalstate_sets_total{status="success",store="bench"} 2`)
	assert.Contains(t, body, `globalstate_observers{store="bench"} 2`)
}

func TestVersionCmd(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, version, strings.TrimSpace(out.String()))
}

func TestRunCmd(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"run", "--views=2", "--sets=3"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "final value:   3")
}
