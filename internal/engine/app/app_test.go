package app

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/akyaiy/godoit/internal/core/corestate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(buf *bytes.Buffer) (*App, *int) {
	a := New()
	a.AppX.Log = log.New(buf, "", 0)
	code := -1
	a.exit = func(c int) { code = c }
	return a, &code
}

func TestRun_HooksInOrder(t *testing.T) {
	var buf bytes.Buffer
	a, code := newTestApp(&buf)

	var order []string
	a.InitialHooks(
		func(cs *corestate.CoreState, x *AppX) {
			order = append(order, "first")
			cs.Advance(corestate.StagePreInit)
		},
		func(cs *corestate.CoreState, x *AppX) {
			order = append(order, "second")
			cs.Advance(corestate.StageReady)
		},
	)
	a.Fallback(func(ctx context.Context, cs *corestate.CoreState, x *AppX) { order = append(order, "fallback") })
	a.Run(func(ctx context.Context, cs *corestate.CoreState, x *AppX) error {
		assert.Equal(t, corestate.StageReady, cs.Stage)
		order = append(order, "run")
		return nil
	})

	assert.Equal(t, []string{"first", "second", "run", "fallback"}, order)
	assert.Equal(t, -1, *code, "success does not exit")
}

func TestRun_ErrorExits(t *testing.T) {
	var buf bytes.Buffer
	a, code := newTestApp(&buf)

	fallbacks := 0
	a.Fallback(func(ctx context.Context, cs *corestate.CoreState, x *AppX) { fallbacks++ })
	a.Run(func(ctx context.Context, cs *corestate.CoreState, x *AppX) error {
		return errors.New("remote said no")
	})

	assert.Equal(t, 1, *code)
	assert.Equal(t, 1, fallbacks)
	assert.Contains(t, buf.String(), "remote said no")
}

func TestRun_PanicRunsFallbackOnce(t *testing.T) {
	var buf bytes.Buffer
	a, code := newTestApp(&buf)

	fallbacks := 0
	a.Fallback(func(ctx context.Context, cs *corestate.CoreState, x *AppX) { fallbacks++ })
	require.NotPanics(t, func() {
		a.Run(func(ctx context.Context, cs *corestate.CoreState, x *AppX) error {
			a.CallFallback(ctx)
			panic("boom")
		})
	})

	assert.Equal(t, 1, *code)
	assert.Equal(t, 1, fallbacks)
	assert.Contains(t, buf.String(), "PANIC recovered: boom")
}
