// Package app runs one godoit command: initial hooks build the state, the
// run hook does the work, and the fallback cleans up on exit or panic.
package app

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akyaiy/godoit/idoit"
	"github.com/akyaiy/godoit/internal/core/corestate"
	"github.com/akyaiy/godoit/internal/core/sessionstore"
	"github.com/akyaiy/godoit/internal/engine/config"
	"github.com/akyaiy/godoit/internal/engine/render"
)

type AppContract interface {
	InitialHooks(fn ...func(cs *corestate.CoreState, x *AppX))
	Run(fn func(ctx context.Context, cs *corestate.CoreState, x *AppX) error)
	Fallback(fn func(ctx context.Context, cs *corestate.CoreState, x *AppX))

	CallFallback(ctx context.Context)
}

type App struct {
	initHooks []func(cs *corestate.CoreState, x *AppX)
	runHook   func(ctx context.Context, cs *corestate.CoreState, x *AppX) error
	fallback  func(ctx context.Context, cs *corestate.CoreState, x *AppX)

	Corestate *corestate.CoreState
	AppX      *AppX

	fallbackOnce sync.Once
	exit         func(code int)
}

// AppX is what hooks share: configuration, the stage logger, the structured
// logger and, once built, the i-doit client with its session store.
type AppX struct {
	Config *config.Compositor
	Log    *log.Logger
	SLog   *slog.Logger

	Client   *idoit.Client
	Sessions sessionstore.StoreContract
	Out      *render.Renderer
	Stdout   io.Writer
}

func New() *App {
	return &App{
		AppX: &AppX{
			Log:    log.Default(),
			SLog:   slog.New(slog.DiscardHandler),
			Stdout: os.Stdout,
		},
		Corestate: corestate.NewCorestate(&corestate.CoreState{}),
		exit:      os.Exit,
	}
}

func (a *App) InitialHooks(fn ...func(cs *corestate.CoreState, x *AppX)) {
	a.initHooks = append(a.initHooks, fn...)
}

func (a *App) Fallback(fn func(ctx context.Context, cs *corestate.CoreState, x *AppX)) {
	a.fallback = fn
}

// Run executes the initial hooks, then fn under a context canceled by
// SIGINT/SIGTERM. An error from fn is fatal.
func (a *App) Run(fn func(ctx context.Context, cs *corestate.CoreState, x *AppX) error) {
	a.runHook = fn

	for _, hook := range a.initHooks {
		hook(a.Corestate, a.AppX)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if r := recover(); r != nil {
			a.AppX.Log.Printf("PANIC recovered: %v", r)
			a.CallFallback(ctx)
			a.exit(1)
		}
	}()

	var runErr error
	if a.runHook != nil {
		runErr = a.runHook(ctx, a.Corestate, a.AppX)
	}
	a.CallFallback(ctx)

	if runErr != nil {
		a.AppX.Log.Printf("%v", runErr)
		a.exit(1)
	}
}

func (a *App) CallFallback(ctx context.Context) {
	a.fallbackOnce.Do(func() {
		if a.fallback != nil {
			a.fallback(ctx, a.Corestate, a.AppX)
		}
	})
}

var _ AppContract = (*App)(nil)
