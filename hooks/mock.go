package hooks

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/akyaiy/godoit/internal/core/corestate"
	"github.com/akyaiy/godoit/internal/core/utils"
	"github.com/akyaiy/godoit/internal/engine/app"
	"github.com/akyaiy/godoit/internal/engine/config"
	"github.com/akyaiy/godoit/internal/engine/logs"
	"github.com/akyaiy/godoit/internal/server/mock"
	"golang.org/x/net/netutil"
)

// MaxConnections caps concurrent connections to the mock endpoint.
var MaxConnections = 100

const sessionCleanupInterval = 5 * time.Second

// RunMock serves the mock endpoint until the command is interrupted.
func RunMock(flags *config.MockFlags) {
	var ep *mock.Endpoint
	var srv *http.Server

	a := app.New()
	a.InitialHooks(Init0Hook, Init1Hook, Init2Hook, Init3Hook)
	a.Fallback(func(ctx context.Context, cs *corestate.CoreState, x *app.AppX) {
		if srv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				x.Log.Printf("%s: Failed to stop the server gracefully: %s", logs.PrintError(), err.Error())
			} else {
				x.Log.Printf("Server stopped gracefully")
			}
		}
		if ep != nil {
			if err := ep.Close(); err != nil {
				x.Log.Printf("%s: Cleanup error: %s", logs.PrintError(), err.Error())
			}
		}
	})
	a.Run(func(ctx context.Context, cs *corestate.CoreState, x *app.AppX) error {
		cs.Advance(corestate.StageReady)
		x.Log.SetPrefix(logs.SetGreen("(" + string(cs.Stage) + ") "))

		var err error
		ep, err = mock.New(mockInit(x.Config.Conf.Mock, x.SLog))
		if err != nil {
			return err
		}
		srv = &http.Server{
			Handler: ep.Handler,
			ErrorLog: log.New(&logs.SlogWriter{
				Logger: x.SLog,
				Level:  slog.LevelError,
			}, "", 0),
		}
		return serveMock(ctx, x, ep, srv, mockAddr(x.Config.Conf.Mock, flags))
	})
}

func mockInit(conf *config.Mock, log *slog.Logger) *mock.EndpointInit {
	return &mock.EndpointInit{
		Log:         log.With(slog.String("component", "mock")),
		APIKey:      *conf.APIKey,
		RequireAuth: *conf.RequireAuth,
		Users:       *conf.Users,
		SessionTTL:  *conf.SessionTTL,
		DBPath:      *conf.DBPath,
		ScriptDir:   *conf.ScriptDir,
		Route:       config.RPCRoute,
	}
}

func mockAddr(conf *config.Mock, flags *config.MockFlags) string {
	host, port := *conf.Address, *conf.Port
	if flags != nil && flags.Address != "" {
		host = flags.Address
	}
	if flags != nil && flags.Port != "" {
		port = flags.Port
	}
	return net.JoinHostPort(host, port)
}

func serveMock(ctx context.Context, x *app.AppX, ep *mock.Endpoint, srv *http.Server, addr string) error {
	ctxMain, cancelMain := context.WithCancel(ctx)
	defer cancelMain()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	x.Log.Printf("Serving mock i-doit on %s (http://%s%s)", addr, listener.Addr().String(), config.RPCRoute)

	serveErr := make(chan error, 1)
	go func() {
		defer utils.CatchPanicWithCancel(cancelMain)
		if err := srv.Serve(netutil.LimitListener(listener, MaxConnections)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			cancelMain()
		}
	}()

	ep.StartCleanup(ctxMain, sessionCleanupInterval)

	<-ctxMain.Done()
	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}
