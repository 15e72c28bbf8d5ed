package gateway

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/akyaiy/godoit/internal/core/utils"
	"github.com/akyaiy/godoit/internal/server/rpc"
)

const maxBodyBytes = 1 << 20

const (
	headerSession  = "X-RPC-Auth-Session"
	headerUsername = "X-RPC-Auth-Username"
	headerPassword = "X-RPC-Auth-Password"
)

func (gs *GatewayServer) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		gs.log.Debug("failed to read body", slog.String("err", err.Error()))
		_ = utils.WriteJSONError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	gs.log.Debug("new request", slog.Group("connection", slog.String("ip", r.RemoteAddr)), slog.Int("size", len(body)))

	// determine if the JSON-RPC request is a batch
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		var batch []rpc.RPCRequest
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			gs.log.Info("invalid request received", slog.String("issue", rpc.ErrParseErrorS))
			_ = rpc.WriteError(w, rpc.NewError(rpc.ErrParseError, rpc.ErrParseErrorS, nil, nil))
			return
		}
		result := make([]*rpc.RPCResponse, 0, len(batch))
		for i := range batch {
			if res := gs.Route(ctx, r, &batch[i]); res != nil {
				result = append(result, res)
			}
		}
		// a batch of notifications gets no response at all
		if len(result) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
		return
	}

	var single rpc.RPCRequest
	if err := json.Unmarshal(body, &single); err != nil {
		gs.log.Info("invalid request received", slog.String("issue", rpc.ErrParseErrorS))
		_ = rpc.WriteError(w, rpc.NewError(rpc.ErrParseError, rpc.ErrParseErrorS, nil, nil))
		return
	}
	resp := gs.Route(ctx, r, &single)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	_ = rpc.WriteResponse(w, resp)
}

// Route answers a single request. Requests without id are notifications:
// they are executed but get no response.
func (gs *GatewayServer) Route(ctx context.Context, r *http.Request, req *rpc.RPCRequest) (resp *rpc.RPCResponse) {
	defer utils.CatchPanicWithFallback(func(rec any) {
		gs.log.Error("panic caught in handler", slog.Any("error", rec))
		resp = rpc.NewError(rpc.ErrInternalError, "Internal server error (panic)", nil, req.ID)
	})

	if req.Version != rpc.JSONRPCVersion {
		gs.log.Info("invalid request received", slog.String("issue", rpc.ErrInvalidRequestS), slog.String("requested-version", req.Version))
		return rpc.NewError(rpc.ErrInvalidRequest, rpc.ErrInvalidRequestS, nil, req.ID)
	}
	if req.Method == "" {
		return rpc.NewError(rpc.ErrInvalidRequest, rpc.ErrInvalidRequestS, "method is missing", req.ID)
	}

	call := &Call{Req: req, Header: r.Header}
	if rpcErr := gs.authenticate(r, call); rpcErr != nil {
		gs.log.Info("request rejected", slog.String("method", req.Method), slog.String("issue", rpcErr.Message))
		return &rpc.RPCResponse{JSONRPC: rpc.JSONRPCVersion, ID: req.ID, Error: rpcErr}
	}

	result, rpcErr := gs.dispatch(ctx, call)
	if req.ID == nil {
		return nil
	}
	if rpcErr != nil {
		return &rpc.RPCResponse{JSONRPC: rpc.JSONRPCVersion, ID: req.ID, Error: rpcErr}
	}
	return rpc.NewResponse(result, req.ID)
}

func (gs *GatewayServer) authenticate(r *http.Request, call *Call) *rpc.RPCError {
	apikey, _ := call.Req.Params["apikey"].(string)
	if subtle.ConstantTimeCompare([]byte(apikey), []byte(gs.apikey)) != 1 {
		return &rpc.RPCError{Code: rpc.ErrInvalidAPIKey, Message: rpc.ErrInvalidAPIKeyS}
	}

	// idoit.login carries its credentials in dedicated headers
	if call.Req.Method == methodLogin {
		return nil
	}

	if sid := r.Header.Get(headerSession); sid != "" {
		user, ok := gs.sm.Lookup(sid)
		if !ok {
			return &rpc.RPCError{Code: rpc.ErrSessionExpired, Message: rpc.ErrSessionExpiredS}
		}
		call.User = user
		call.SessionID = sid
		return nil
	}
	if username, password, ok := r.BasicAuth(); ok {
		if !gs.checkUser(username, password) {
			return &rpc.RPCError{Code: rpc.ErrAuthFailed, Message: rpc.ErrAuthFailedS}
		}
		call.User = username
		return nil
	}
	if gs.requireAuth {
		return &rpc.RPCError{Code: rpc.ErrAuthFailed, Message: rpc.ErrAuthFailedS}
	}
	return nil
}

func (gs *GatewayServer) checkUser(username, password string) bool {
	want, ok := gs.users[username]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(want)) == 1
}

func (gs *GatewayServer) dispatch(ctx context.Context, call *Call) (any, *rpc.RPCError) {
	if fn, ok := gs.methods[call.Req.Method]; ok {
		return fn(ctx, call)
	}
	if gs.scripts != nil {
		if path, err := gs.scripts.Resolve(call.Req.Method); err == nil {
			gs.log.Debug("running script", slog.String("method", call.Req.Method), slog.String("script", path))
			return gs.scripts.Run(path, call.Req.Params)
		}
	}
	gs.log.Info("invalid request received", slog.String("issue", rpc.ErrMethodNotFoundS), slog.String("requested-method", call.Req.Method))
	return nil, &rpc.RPCError{Code: rpc.ErrMethodNotFound, Message: rpc.ErrMethodNotFoundS}
}
