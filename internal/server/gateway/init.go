package gateway

import (
	"log/slog"
	"net/http"

	"github.com/akyaiy/godoit/internal/engine/lua"
	"github.com/akyaiy/godoit/internal/server/cmdb"
	"github.com/akyaiy/godoit/internal/server/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// GatewayServerInit structure only for initialization of the gateway.
type GatewayServerInit struct {
	Log         *slog.Logger
	APIKey      string
	RequireAuth bool
	Users       map[string]string
	// Version is reported by idoit.version.
	Version string

	SM    session.SessionManagerContract
	Store cmdb.StoreContract
	// Scripts is optional; without it unknown methods are not found.
	Scripts lua.RunnerContract
}

func InitGateway(o *GatewayServerInit) *GatewayServer {
	gs := &GatewayServer{
		log:         o.Log,
		apikey:      o.APIKey,
		requireAuth: o.RequireAuth,
		users:       o.Users,
		version:     o.Version,
		sm:          o.SM,
		store:       o.Store,
		scripts:     o.Scripts,
	}
	if gs.log == nil {
		gs.log = slog.New(slog.DiscardHandler)
	}
	gs.registerBuiltins()
	return gs
}

// Router mounts the gateway on "/" and on route, the path i-doit itself uses.
func (gs *GatewayServer) Router(route string) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type",
			"X-RPC-Auth-Session", "X-RPC-Auth-Username", "X-RPC-Auth-Password"},
		MaxAge: 300,
	}))
	r.Post("/", gs.Handle)
	if route != "" && route != "/" {
		r.Post(route, gs.Handle)
	}
	r.Route("/favicon.ico", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return r
}
