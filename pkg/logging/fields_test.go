package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.llib.dev/testcase/assert"

	"go.llib.dev/bimap/pkg/errorkit"
	"go.llib.dev/bimap/pkg/logging"
)

func lastEntry(tb testing.TB, out logging.StubOutput) map[string]any {
	tb.Helper()
	var got map[string]any
	assert.NoError(tb, json.Unmarshal(out.Bytes(), &got))
	return got
}

func TestFields(t *testing.T) {
	l, out := logging.Stub(t)
	l.Info(context.Background(), "msg", logging.Fields{
		"str":    "v",
		"nested": logging.Fields{"n": 1},
		"ptr":    &[]int{1}[0],
		"nil":    (*int)(nil),
	})
	got := lastEntry(t, out)
	assert.Equal[any](t, "v", got["str"])
	assert.Equal[any](t, map[string]any{"n": float64(1)}, got["nested"])
	assert.Equal[any](t, float64(1), got["ptr"])
	assert.Equal[any](t, nil, got["nil"])
}

func TestLazyDetail(t *testing.T) {
	var called bool
	lazy := logging.LazyDetail(func() logging.Detail {
		called = true
		return logging.Field("expensive", true)
	})

	l, out := logging.Stub(t)
	l.Level = logging.LevelInfo
	l.Debug(context.Background(), "skipped", lazy)
	assert.False(t, called)

	l.Info(context.Background(), "logged", lazy)
	assert.True(t, called)
	assert.Equal[any](t, true, lastEntry(t, out)["expensive"])
}

func TestErrField(t *testing.T) {
	const ErrKind errorkit.Error = "ErrKind"

	t.Run("plain error", func(t *testing.T) {
		l, out := logging.Stub(t)
		l.Error(context.Background(), "failed", logging.ErrField(errors.New("boom")))
		assert.Equal[any](t, map[string]any{"message": "boom"}, lastEntry(t, out)["error"])
	})
	t.Run("error with a kind", func(t *testing.T) {
		l, out := logging.Stub(t)
		err := ErrKind.F("detail")
		l.Error(context.Background(), "failed", logging.ErrField(err))
		assert.Equal[any](t, map[string]any{"message": err.Error(), "kind": "ErrKind"}, lastEntry(t, out)["error"])
	})
	t.Run("nil error", func(t *testing.T) {
		l, out := logging.Stub(t)
		l.Error(context.Background(), "failed", logging.ErrField(nil))
		_, ok := lastEntry(t, out)["error"]
		assert.False(t, ok)
	})
}

func TestContextWith(t *testing.T) {
	l, out := logging.Stub(t)
	ctx := context.Background()
	assert.Equal(t, ctx, logging.ContextWith(ctx))

	ctx = logging.ContextWith(ctx, logging.Field("a", 1), logging.Field("b", 1))
	ctx = logging.ContextWith(ctx, logging.Field("b", 2))
	l.Info(ctx, "msg", logging.Field("c", 3))

	got := lastEntry(t, out)
	assert.Equal[any](t, float64(1), got["a"])
	assert.Equal[any](t, float64(2), got["b"])
	assert.Equal[any](t, float64(3), got["c"])
}
