package suspense

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWithValueIsReady(t *testing.T) {
	h := NewHandlerWithValue(1)

	r := h.Read()
	v, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Nil(t, r.Handle())
	assert.Equal(t, IdleWithValue, h.State())
}

func TestReadWithoutValueSuspends(t *testing.T) {
	h := NewHandler[int]()
	assert.Equal(t, IdleWithoutValue, h.State())

	r := h.Read()
	assert.False(t, r.IsReady())
	require.NotNil(t, r.Handle())
	assert.Equal(t, Waiting, h.State())
	assert.Equal(t, 1, h.Pending())
}

func TestRepeatedReadsShareOneHandle(t *testing.T) {
	h := NewHandler[int]()

	first := h.Read().Handle()
	second := h.Read().Handle()
	third := h.Read().Handle()

	assert.Same(t, first, second)
	assert.Same(t, first, third)
	assert.Equal(t, 1, h.Pending())
}

func TestProduceResolvesPendingWait(t *testing.T) {
	h := NewHandler[string]()
	handle := h.Read().Handle()

	resumed := 0
	handle.OnResolve(func() { resumed++ })

	h.Produce("ready")

	assert.True(t, handle.Resolved())
	assert.Equal(t, 1, resumed)
	assert.Equal(t, 0, h.Pending())
	assert.Equal(t, IdleWithValue, h.State())
	assert.Equal(t, "ready", h.Read().Must())

	v, err := handle.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ready", v)
}

func TestProduceWhileHoldingValueOnlyUpdates(t *testing.T) {
	h := NewHandlerWithValue(1)
	h.Produce(2)
	h.Produce(3)

	assert.Equal(t, 0, h.Pending())
	assert.Equal(t, 3, h.Read().Must())
}

func TestResolutionCallbacksRunBeforeProduceReturns(t *testing.T) {
	h := NewHandler[int]()
	handle := h.Read().Handle()

	var seen int
	handle.OnResolve(func() {
		seen = h.Read().Must()
	})
	h.Produce(9)

	assert.Equal(t, 9, seen)
}

func TestOnResolveAfterResolutionRunsImmediately(t *testing.T) {
	h := NewHandler[int]()
	handle := h.Read().Handle()
	h.Produce(1)

	called := false
	handle.OnResolve(func() { called = true })
	assert.True(t, called)
}

func TestWaitFromAnotherGoroutine(t *testing.T) {
	h := NewHandler[int]()
	handle := h.Read().Handle()

	done := make(chan int, 1)
	go func() {
		v, err := handle.Wait(context.Background())
		if err == nil {
			done <- v
		}
	}()

	h.Produce(42)

	select {
	case v := <-done:
		assert.Equal(t, 42, v)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter was not released")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	h := NewHandler[int]()
	handle := h.Read().Handle()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := handle.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, handle.Resolved())
}

func TestMustPanicsOnPending(t *testing.T) {
	r := NewHandler[int]().Read()
	assert.Panics(t, func() { r.Must() })
	assert.Equal(t, "Pending", r.String())
	assert.Equal(t, "Ready(3)", Ready(3).String())
}

func TestWaitHooks(t *testing.T) {
	waits, resolves := 0, 0
	h := NewHandler[int](WithWaitHooks(func() { waits++ }, func() { resolves++ }))

	h.Read()
	h.Read()
	assert.Equal(t, 1, waits)

	assert.True(t, h.Produce(1))
	assert.False(t, h.Produce(2))
	assert.Equal(t, 1, resolves)

	h.Read()
	assert.Equal(t, 1, waits)
}

func TestProduceVersionDropsStaleValues(t *testing.T) {
	h := NewHandler[string]()
	handle := h.Read().Handle()

	assert.True(t, h.ProduceVersion(2, "second"))
	assert.False(t, h.ProduceVersion(1, "first"))
	assert.False(t, h.ProduceVersion(2, "again"))
	assert.Equal(t, "second", h.Read().Must())

	v, err := handle.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	h.ProduceVersion(3, "third")
	assert.Equal(t, "third", h.Read().Must())
}

func TestProduceVersionConcurrentWritersKeepNewest(t *testing.T) {
	h := NewHandler[uint64]()

	var wg sync.WaitGroup
	for i := uint64(1); i <= 64; i++ {
		wg.Add(1)
		go func(version uint64) {
			defer wg.Done()
			h.ProduceVersion(version, version)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, uint64(64), h.Read().Must())
}
