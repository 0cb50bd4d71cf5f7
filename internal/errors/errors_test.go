package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{name: "initializer", code: "E101", wantMsg: "Store initializer failed", wantCat: CategoryInit},
		{name: "update", code: "E102", wantMsg: "Update function failed", wantCat: CategoryUpdate},
		{name: "observer", code: "E103", wantMsg: "Observer panicked during broadcast", wantCat: CategoryObserver},
		{name: "wait", code: "E104", wantMsg: "Wait for value canceled", wantCat: CategoryWait},
		{name: "bench option", code: "E201", wantMsg: "Invalid benchmark option", wantCat: CategoryConfig},
		{name: "unknown", code: "E999", wantMsg: "Unknown error", wantCat: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			assert.Equal(t, tt.wantMsg, err.Message)
			assert.Equal(t, tt.wantCat, err.Category)
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := New("E101").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "E101: Store initializer failed: disk on fire", err.Error())
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("E102").Wrap(fmt.Errorf("bad")))

	assert.ErrorIs(t, err, New("E102"))
	assert.NotErrorIs(t, err, New("E101"))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil, "E101"))

	existing := New("E104")
	assert.Same(t, existing, FromError(existing, "E101"))

	wrapped := FromError(fmt.Errorf("x"), "E102")
	require.NotNil(t, wrapped)
	assert.Equal(t, "E102", wrapped.Code)
}

func TestFormat(t *testing.T) {
	err := New("E102").WithStore("cart").Wrap(fmt.Errorf("negative total"))

	assert.Equal(t, "cart: E102: Update function failed", err.FormatCompact())

	out := err.Format()
	assert.True(t, strings.HasPrefix(out, "ERROR cart: E102"))
	assert.Contains(t, out, "cause: negative total")
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.LessOrEqual(t, len(line), 80)
	}

	var buf bytes.Buffer
	Print(&buf, fmt.Errorf("plain"))
	assert.Equal(t, "ERROR: plain\n", buf.String())

	buf.Reset()
	Print(&buf, fmt.Errorf("run: %w", err))
	assert.Equal(t, out, buf.String())
}
