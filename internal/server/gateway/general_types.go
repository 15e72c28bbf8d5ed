// Package gateway is the HTTP face of the mock i-doit endpoint: it parses
// the envelope, checks the API key and authentication, and routes the call
// to a built-in method or a Lua script.
package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/akyaiy/godoit/internal/engine/lua"
	"github.com/akyaiy/godoit/internal/server/cmdb"
	"github.com/akyaiy/godoit/internal/server/rpc"
	"github.com/akyaiy/godoit/internal/server/session"
)

// Call is one decoded request together with who made it.
type Call struct {
	Req       *rpc.RPCRequest
	Header    http.Header
	User      string
	SessionID string
}

type methodFunc func(ctx context.Context, call *Call) (any, *rpc.RPCError)

type GatewayServer struct {
	log *slog.Logger

	apikey      string
	requireAuth bool
	users       map[string]string
	version     string

	sm      session.SessionManagerContract
	store   cmdb.StoreContract
	scripts lua.RunnerContract

	methods map[string]methodFunc
}
