package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akyaiy/godoit/idoit"
	"github.com/akyaiy/godoit/internal/engine/lua"
	"github.com/akyaiy/godoit/internal/server/cmdb"
	"github.com/akyaiy/godoit/internal/server/rpc"
	"github.com/akyaiy/godoit/internal/server/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoute = "/src/jsonrpc.php"

type fixture struct {
	srv *httptest.Server
	sm  *session.SessionManager
}

func newFixture(t *testing.T, requireAuth bool, scriptDir string) *fixture {
	t.Helper()
	store, err := cmdb.Open(":memory:", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sm := session.New(time.Minute)
	o := &GatewayServerInit{
		APIKey:      "key",
		RequireAuth: requireAuth,
		Users:       map[string]string{"admin": "secret"},
		Version:     "1.19",
		SM:          sm,
		Store:       store,
	}
	if scriptDir != "" {
		o.Scripts = lua.NewRunner(scriptDir, slog.New(slog.DiscardHandler))
	}
	srv := httptest.NewServer(InitGateway(o).Router(testRoute))
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, sm: sm}
}

func (f *fixture) post(t *testing.T, body string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, f.srv.URL+testRoute, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *fixture) call(t *testing.T, method string, params map[string]any, header map[string]string) *rpc.RPCResponse {
	t.Helper()
	if params == nil {
		params = map[string]any{}
	}
	if _, ok := params["apikey"]; !ok {
		params["apikey"] = "key"
	}
	body, err := json.Marshal(rpc.NewRequest(1, method, params))
	require.NoError(t, err)

	resp := f.post(t, string(body), header)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out rpc.RPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return &out
}

func TestGateway_LoginAndSession(t *testing.T) {
	f := newFixture(t, true, "")

	res := f.call(t, methodLogin, map[string]any{"language": "de"}, map[string]string{
		headerUsername: "admin",
		headerPassword: "secret",
	})
	require.Nil(t, res.Error)
	result := res.Result.(map[string]any)
	sid := result["session-id"].(string)
	assert.NotEmpty(t, sid)
	assert.Equal(t, "de", result["language"])

	res = f.call(t, methodVersion, nil, map[string]string{headerSession: sid})
	require.Nil(t, res.Error)
	assert.Equal(t, "1.19", res.Result.(map[string]any)["version"])

	res = f.call(t, methodLogout, nil, map[string]string{headerSession: sid})
	require.Nil(t, res.Error)

	res = f.call(t, methodVersion, nil, map[string]string{headerSession: sid})
	require.NotNil(t, res.Error)
	assert.Equal(t, rpc.ErrSessionExpired, res.Error.Code)
}

func TestGateway_AuthFailures(t *testing.T) {
	f := newFixture(t, true, "")

	res := f.call(t, methodLogin, nil, map[string]string{headerUsername: "admin", headerPassword: "wrong"})
	require.NotNil(t, res.Error)
	assert.Equal(t, rpc.ErrAuthFailed, res.Error.Code)

	res = f.call(t, methodVersion, map[string]any{"apikey": "nope"}, nil)
	require.NotNil(t, res.Error)
	assert.Equal(t, rpc.ErrInvalidAPIKey, res.Error.Code)

	res = f.call(t, methodVersion, nil, nil)
	require.NotNil(t, res.Error)
	assert.Equal(t, rpc.ErrAuthFailed, res.Error.Code, "anonymous calls are refused when auth is required")
}

func TestGateway_BasicAuth(t *testing.T) {
	f := newFixture(t, true, "")

	body, err := json.Marshal(rpc.NewRequest(1, methodVersion, map[string]any{"apikey": "key"}))
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/", strings.NewReader(string(body)))
	require.NoError(t, err)
	req.SetBasicAuth("admin", "secret")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out rpc.RPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Nil(t, out.Error)
	login := out.Result.(map[string]any)["login"].(map[string]any)
	assert.Equal(t, "admin", login["username"])
}

func TestGateway_ObjectLifecycle(t *testing.T) {
	f := newFixture(t, false, "")

	res := f.call(t, methodObjectCreate, map[string]any{
		"type": "C__OBJTYPE__SERVER", "title": "srv1",
		"category": nil, "purpose": nil, "cmdb_status": nil, "description": nil,
	}, nil)
	require.Nil(t, res.Error)
	created := res.Result.(map[string]any)
	assert.Equal(t, "1", created["id"])
	assert.Equal(t, true, created["success"])

	res = f.call(t, methodObjectUpdate, map[string]any{"id": 1, "title": "srv1-renamed"}, nil)
	require.Nil(t, res.Error)

	res = f.call(t, methodSearch, map[string]any{"q": "renamed"}, nil)
	require.Nil(t, res.Error)
	require.Len(t, res.Result.([]any), 1)

	res = f.call(t, methodObjectArchive, map[string]any{"object": 1}, nil)
	require.Nil(t, res.Error)

	res = f.call(t, methodObjectRead, map[string]any{"id": "1"}, nil)
	require.Nil(t, res.Error)
	obj := res.Result.(map[string]any)
	assert.Equal(t, "srv1-renamed", obj["title"])
	assert.Equal(t, float64(cmdb.StatusArchived), obj["status"])

	res = f.call(t, methodObjectDelete, map[string]any{"id": 1, "status": "C__RECORD_STATUS__NORMAL"}, nil)
	require.NotNil(t, res.Error)
	assert.Equal(t, rpc.ErrInvalidParams, res.Error.Code)

	res = f.call(t, methodObjectDelete, map[string]any{"id": 1, "status": cmdb.StatusPurge}, nil)
	require.Nil(t, res.Error)

	res = f.call(t, methodObjectRead, map[string]any{"id": 1}, nil)
	require.NotNil(t, res.Error)
	assert.Equal(t, rpc.ErrObjectNotFound, res.Error.Code)
}

func TestGateway_EnvelopeErrors(t *testing.T) {
	f := newFixture(t, false, "")

	resp := f.post(t, `{not json`, nil)
	var out rpc.RPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotNil(t, out.Error)
	assert.Equal(t, rpc.ErrParseError, out.Error.Code)

	res := f.call(t, "cmdb.nothing.here", nil, nil)
	require.NotNil(t, res.Error)
	assert.Equal(t, rpc.ErrMethodNotFound, res.Error.Code)

	resp = f.post(t, `{"version":"1.0","method":"idoit.version","params":{"apikey":"key"},"id":1}`, nil)
	out = rpc.RPCResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotNil(t, out.Error)
	assert.Equal(t, rpc.ErrInvalidRequest, out.Error.Code)
}

func TestGateway_BatchAndNotification(t *testing.T) {
	f := newFixture(t, false, "")

	resp := f.post(t, `[
		{"version":"2.0","method":"idoit.version","params":{"apikey":"key"},"id":1},
		{"version":"2.0","method":"idoit.constants","params":{"apikey":"key"}},
		{"version":"2.0","method":"idoit.constants","params":{"apikey":"key"},"id":2}
	]`, nil)
	var out []rpc.RPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, float64(1), out[0].ID)
	assert.Equal(t, float64(2), out[1].ID)

	resp = f.post(t, `{"version":"2.0","method":"idoit.version","params":{"apikey":"key"}}`, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestGateway_Scripts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmdb", "category", "read.lua")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`Out.Result = { objID = In.Params.objID, category = In.Params.category }`), 0o644))

	f := newFixture(t, false, dir)
	res := f.call(t, "cmdb.category.read", map[string]any{"objID": 7, "category": "C__CATG__CPU"}, nil)
	require.Nil(t, res.Error)
	assert.Equal(t, map[string]any{"objID": float64(7), "category": "C__CATG__CPU"}, res.Result)
}

func TestGateway_NotificationOnlyBatch(t *testing.T) {
	f := newFixture(t, false, "")

	resp := f.post(t, `[
		{"version":"2.0","method":"idoit.version","params":{"apikey":"key"}},
		{"version":"2.0","method":"idoit.constants","params":{"apikey":"key"}}
	]`, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestGateway_NullResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmdb", "x", "nothing.lua")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`Out.Result = nil`), 0o644))
	f := newFixture(t, false, dir)

	resp := f.post(t, `{"version":"2.0","method":"cmdb.x.nothing","params":{"apikey":"key"},"id":1}`, nil)
	var members map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&members))
	require.Contains(t, members, "result", "a successful call always carries result")
	assert.Equal(t, "null", string(members["result"]))
	assert.NotContains(t, members, "error")

	c := idoit.New(&idoit.ClientInit{URL: f.srv.URL + testRoute, APIKey: "key"})
	raw, err := c.Call(context.Background(), "cmdb.x.nothing", nil)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestGateway_ErrorHasNoResult(t *testing.T) {
	f := newFixture(t, false, "")

	resp := f.post(t, `{"version":"2.0","method":"cmdb.nothing.here","params":{"apikey":"key"},"id":1}`, nil)
	var members map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&members))
	assert.Contains(t, members, "error")
	assert.NotContains(t, members, "result")
}

func TestGateway_CORSPreflight(t *testing.T) {
	f := newFixture(t, false, "")

	req, err := http.NewRequest(http.MethodOptions, f.srv.URL+testRoute, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-RPC-Auth-Session")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestGateway_StatusOfMissingObject(t *testing.T) {
	f := newFixture(t, false, "")

	res := f.call(t, methodObjectArchive, map[string]any{"object": 99}, nil)
	require.NotNil(t, res.Error)
	assert.Equal(t, rpc.ErrObjectNotFound, res.Error.Code)
}
