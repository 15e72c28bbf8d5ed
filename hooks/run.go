package hooks

import (
	"context"

	"github.com/akyaiy/godoit/internal/core/corestate"
	"github.com/akyaiy/godoit/internal/engine/app"
)

type RunFunc func(ctx context.Context, cs *corestate.CoreState, x *app.AppX) error

type InitHook func(cs *corestate.CoreState, x *app.AppX)

var baseHooks = []InitHook{Init0Hook, Init1Hook, Init2Hook, Init3Hook}

func run(hooks []InitHook, fn RunFunc) {
	a := app.New()
	for _, h := range hooks {
		a.InitialHooks(h)
	}
	a.Run(fn)
}

// Run executes fn with configuration and logging set up.
func Run(fn RunFunc) {
	run(baseHooks, fn)
}

// RunClient executes fn with x.Client ready.
func RunClient(fn RunFunc) {
	run(append(baseHooks[:len(baseHooks):len(baseHooks)], ClientHook), fn)
}
