// Package mock assembles the mock i-doit endpoint from its parts: session
// manager, sqlite object store, optional Lua scripts and the gateway.
package mock

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/akyaiy/godoit/internal/engine/lua"
	"github.com/akyaiy/godoit/internal/server/cmdb"
	"github.com/akyaiy/godoit/internal/server/gateway"
	"github.com/akyaiy/godoit/internal/server/session"
)

// EndpointInit structure only for initialization.
type EndpointInit struct {
	Log         *slog.Logger
	APIKey      string
	RequireAuth bool
	Users       map[string]string
	Version     string
	SessionTTL  time.Duration
	DBPath      string
	ScriptDir   string
	Route       string
}

type Endpoint struct {
	Handler http.Handler
	Store   *cmdb.Store
	SM      *session.SessionManager
}

// DefaultVersion is what idoit.version reports when EndpointInit.Version is empty.
var DefaultVersion = "1.19"

func New(o *EndpointInit) (*Endpoint, error) {
	log := o.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ttl := o.SessionTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	dbPath := o.DBPath
	if dbPath == "" {
		dbPath = ":memory:"
	}
	version := o.Version
	if version == "" {
		version = DefaultVersion
	}

	store, err := cmdb.Open(dbPath, log.With(slog.String("component", "cmdb")))
	if err != nil {
		return nil, err
	}
	sm := session.New(ttl)

	gwInit := &gateway.GatewayServerInit{
		Log:         log.With(slog.String("component", "gateway")),
		APIKey:      o.APIKey,
		RequireAuth: o.RequireAuth,
		Users:       o.Users,
		Version:     version,
		SM:          sm,
		Store:       store,
	}
	if o.ScriptDir != "" {
		gwInit.Scripts = lua.NewRunner(o.ScriptDir, log.With(slog.String("component", "lua")))
	}

	gs := gateway.InitGateway(gwInit)
	return &Endpoint{
		Handler: gs.Router(o.Route),
		Store:   store,
		SM:      sm,
	}, nil
}

// StartCleanup expires idle sessions until ctx is done.
func (e *Endpoint) StartCleanup(ctx context.Context, interval time.Duration) {
	e.SM.StartCleanup(ctx, interval)
}

func (e *Endpoint) Close() error {
	return e.Store.Close()
}
