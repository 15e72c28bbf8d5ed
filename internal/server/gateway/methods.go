package gateway

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/akyaiy/godoit/internal/server/cmdb"
	"github.com/akyaiy/godoit/internal/server/rpc"
)

const (
	methodLogin     = "idoit.login"
	methodLogout    = "idoit.logout"
	methodVersion   = "idoit.version"
	methodSearch    = "idoit.search"
	methodConstants = "idoit.constants"

	methodObjectCreate         = "cmdb.object.create"
	methodObjectRead           = "cmdb.object.read"
	methodObjectUpdate         = "cmdb.object.update"
	methodObjectDelete         = "cmdb.object.delete"
	methodObjectRecycle        = "cmdb.object.recycle"
	methodObjectArchive        = "cmdb.object.archive"
	methodObjectPurge          = "cmdb.object.purge"
	methodObjectMarkAsTemplate = "cmdb.object.markAsTemplate"
)

// MockMandator is the tenant name reported for every user.
var MockMandator = "godoit mock"

func (gs *GatewayServer) registerBuiltins() {
	gs.methods = map[string]methodFunc{
		methodLogin:     gs.login,
		methodLogout:    gs.logout,
		methodVersion:   gs.versionInfo,
		methodSearch:    gs.search,
		methodConstants: gs.constants,

		methodObjectCreate:         gs.objectCreate,
		methodObjectRead:           gs.objectRead,
		methodObjectUpdate:         gs.objectUpdate,
		methodObjectDelete:         gs.objectDelete,
		methodObjectRecycle:        gs.objectSetStatus(cmdb.StatusNormal, "Object recycled"),
		methodObjectArchive:        gs.objectSetStatus(cmdb.StatusArchived, "Object archived"),
		methodObjectPurge:          gs.objectPurge,
		methodObjectMarkAsTemplate: gs.objectSetStatus(cmdb.StatusTemplate, "Object marked as template"),
	}
}

func (gs *GatewayServer) userInfo(username, language string) map[string]any {
	return map[string]any{
		"userid":   strconv.Itoa(userID(username)),
		"name":     username,
		"mail":     "",
		"username": username,
		"mandator": MockMandator,
		"language": language,
	}
}

// userID derives a stable numeric id from the username.
func userID(username string) int {
	id := 9
	for _, c := range username {
		id = (id*31 + int(c)) % 100000
	}
	return id
}

func (gs *GatewayServer) login(_ context.Context, call *Call) (any, *rpc.RPCError) {
	username := call.Header.Get(headerUsername)
	password := call.Header.Get(headerPassword)
	if username == "" || !gs.checkUser(username, password) {
		return nil, &rpc.RPCError{Code: rpc.ErrAuthFailed, Message: rpc.ErrAuthFailedS}
	}

	language, _ := call.Req.Params["language"].(string)
	if language == "" {
		language = "en"
	}

	res := gs.userInfo(username, language)
	res["session-id"] = gs.sm.Create(username)
	res["client-id"] = "1"
	return res, nil
}

func (gs *GatewayServer) logout(_ context.Context, call *Call) (any, *rpc.RPCError) {
	if call.SessionID != "" {
		gs.sm.Delete(call.SessionID)
	}
	return map[string]any{"message": "Logout successful", "result": true}, nil
}

func (gs *GatewayServer) versionInfo(_ context.Context, call *Call) (any, *rpc.RPCError) {
	user := call.User
	if user == "" {
		user = "api"
	}
	return map[string]any{
		"login":   gs.userInfo(user, "en"),
		"version": gs.version,
		"step":    "",
		"type":    "OPEN",
	}, nil
}

func (gs *GatewayServer) search(ctx context.Context, call *Call) (any, *rpc.RPCError) {
	q, ok := call.Req.Params["q"].(string)
	if !ok {
		return nil, invalidParams("q must be a string")
	}
	objects, err := gs.store.Search(ctx, q)
	if err != nil {
		return nil, internalError(err)
	}
	out := make([]map[string]any, 0, len(objects))
	for _, o := range objects {
		out = append(out, map[string]any{
			"documentId": strconv.FormatInt(o.ID, 10),
			"key":        o.TypeTitle + " > Global > Title",
			"value":      o.Title,
			"type":       "cmdb",
			"link":       fmt.Sprintf("/?objID=%d", o.ID),
			"score":      100,
		})
	}
	return out, nil
}

func (gs *GatewayServer) constants(_ context.Context, _ *Call) (any, *rpc.RPCError) {
	objectTypes := make(map[string]string, len(cmdb.ObjectTypes))
	for _, t := range cmdb.ObjectTypes {
		objectTypes[t.Const] = t.Title
	}
	states := make([]string, 0, len(cmdb.RecordStates))
	for c := range cmdb.RecordStates {
		states = append(states, c)
	}
	sort.Strings(states)
	recordStates := make(map[string]string, len(states))
	for _, c := range states {
		recordStates[c] = c[len("C__RECORD_STATUS__"):]
	}
	return map[string]any{
		"objectTypes": objectTypes,
		"categories": map[string]any{
			"g": cmdb.GlobalCategories,
			"s": cmdb.SpecificCategories,
		},
		"recordStates": recordStates,
	}, nil
}

func (gs *GatewayServer) objectCreate(ctx context.Context, call *Call) (any, *rpc.RPCError) {
	p := call.Req.Params
	title, ok := p["title"].(string)
	if !ok || title == "" {
		return nil, invalidParams("title is required")
	}
	if p["type"] == nil {
		return nil, invalidParams("type is required")
	}

	obj := &cmdb.NewObject{
		Type:        p["type"],
		Title:       title,
		Category:    optionalString(p["category"]),
		Purpose:     optionalString(p["purpose"]),
		CMDBStatus:  p["cmdb_status"],
		Description: optionalString(p["description"]),
	}
	id, err := gs.store.Create(ctx, obj)
	if errors.Is(err, cmdb.ErrUnknownType) || errors.Is(err, cmdb.ErrUnknownCMDBStatus) {
		return nil, invalidParams(err.Error())
	}
	if err != nil {
		return nil, internalError(err)
	}
	return map[string]any{
		"id":      strconv.FormatInt(id, 10),
		"message": "Object was successfully created",
		"success": true,
	}, nil
}

func (gs *GatewayServer) objectRead(ctx context.Context, call *Call) (any, *rpc.RPCError) {
	id, rpcErr := idParam(call.Req.Params, "id")
	if rpcErr != nil {
		return nil, rpcErr
	}
	o, err := gs.store.Read(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return o, nil
}

func (gs *GatewayServer) objectUpdate(ctx context.Context, call *Call) (any, *rpc.RPCError) {
	id, rpcErr := idParam(call.Req.Params, "id")
	if rpcErr != nil {
		return nil, rpcErr
	}
	title, ok := call.Req.Params["title"].(string)
	if !ok || title == "" {
		return nil, invalidParams("title is required")
	}
	if err := gs.store.UpdateTitle(ctx, id, title); err != nil {
		return nil, storeError(err)
	}
	return success("Object title was successfully updated"), nil
}

func (gs *GatewayServer) objectDelete(ctx context.Context, call *Call) (any, *rpc.RPCError) {
	id, rpcErr := idParam(call.Req.Params, "id")
	if rpcErr != nil {
		return nil, rpcErr
	}
	status, _ := call.Req.Params["status"].(string)
	if status == cmdb.StatusPurge {
		if err := gs.store.Purge(ctx, id); err != nil {
			return nil, storeError(err)
		}
		return success("Object purged"), nil
	}
	code, ok := cmdb.RecordStates[status]
	if !ok || (code != cmdb.StatusArchived && code != cmdb.StatusDeleted) {
		return nil, invalidParams("status must be C__RECORD_STATUS__ARCHIVED, C__RECORD_STATUS__DELETED or C__RECORD_STATUS__PURGE")
	}
	if err := gs.store.SetStatus(ctx, id, code); err != nil {
		return nil, storeError(err)
	}
	return success("Object status changed"), nil
}

func (gs *GatewayServer) objectSetStatus(status int, message string) methodFunc {
	return func(ctx context.Context, call *Call) (any, *rpc.RPCError) {
		id, rpcErr := idParam(call.Req.Params, "object")
		if rpcErr != nil {
			return nil, rpcErr
		}
		if err := gs.store.SetStatus(ctx, id, status); err != nil {
			return nil, storeError(err)
		}
		return success(message), nil
	}
}

func (gs *GatewayServer) objectPurge(ctx context.Context, call *Call) (any, *rpc.RPCError) {
	id, rpcErr := idParam(call.Req.Params, "object")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := gs.store.Purge(ctx, id); err != nil {
		return nil, storeError(err)
	}
	return success("Object purged"), nil
}

func success(message string) map[string]any {
	return map[string]any{"success": true, "message": message}
}

func idParam(params map[string]any, key string) (int64, *rpc.RPCError) {
	switch v := params[key].(type) {
	case float64:
		if v > 0 && v == float64(int64(v)) {
			return int64(v), nil
		}
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}
	return 0, invalidParams(key + " must be a positive object id")
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func invalidParams(data string) *rpc.RPCError {
	return &rpc.RPCError{Code: rpc.ErrInvalidParams, Message: rpc.ErrInvalidParamsS, Data: data}
}

func internalError(err error) *rpc.RPCError {
	return &rpc.RPCError{Code: rpc.ErrInternalError, Message: rpc.ErrInternalErrorS, Data: err.Error()}
}

func storeError(err error) *rpc.RPCError {
	if errors.Is(err, cmdb.ErrNotFound) {
		return &rpc.RPCError{Code: rpc.ErrObjectNotFound, Message: rpc.ErrObjectNotFoundS}
	}
	if errors.Is(err, cmdb.ErrUnknownStatus) {
		return invalidParams(err.Error())
	}
	return internalError(err)
}
