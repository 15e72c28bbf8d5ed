// Package lua runs the scripted methods of the mock endpoint.
// A method "a.b.c" resolves to <dir>/a/b/c.lua. The script reads In.Params
// and fills Out.Result, or sets Out.Error = {code = ..., message = ...}.
package lua

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/akyaiy/godoit/internal/server/rpc"
	lua "github.com/yuin/gopher-lua"
)

var (
	ErrInvalidMethodFormat = errors.New("invalid method format")
	ErrScriptNotFound      = errors.New("script not found")
)

// PrepareScript is run before every method script when present in the script dir.
var PrepareScript = "_prepare.lua"

var allowedMethod = regexp.MustCompile(`^[a-zA-Z0-9_]+(\.[a-zA-Z0-9_]+)*$`)

type RunnerContract interface {
	Resolve(method string) (string, error)
	Run(path string, params map[string]any) (any, *rpc.RPCError)
}

type Runner struct {
	dir  string
	log  *slog.Logger
	pool *LuaPool
}

func NewRunner(dir string, log *slog.Logger) *Runner {
	return &Runner{
		dir:  dir,
		log:  log,
		pool: NewLuaPool(),
	}
}

func (r *Runner) Resolve(method string) (string, error) {
	if !allowedMethod.MatchString(method) {
		return "", ErrInvalidMethodFormat
	}

	fullPath := filepath.Join(r.dir, filepath.Join(strings.Split(method, ".")...)+".lua")
	if _, err := os.Stat(fullPath); err != nil {
		return "", ErrScriptNotFound
	}
	return fullPath, nil
}

func (r *Runner) Run(path string, params map[string]any) (any, *rpc.RPCError) {
	L := r.pool.Get()
	defer r.pool.Put(L)

	inTable := L.NewTable()
	paramsTable := L.NewTable()
	for k, v := range params {
		L.SetField(paramsTable, k, ConvertGolangTypesToLua(L, v))
	}
	L.SetField(inTable, "Params", paramsTable)
	L.SetGlobal("In", inTable)

	outTable := L.NewTable()
	L.SetField(outTable, "Result", L.NewTable())
	L.SetGlobal("Out", outTable)

	logTable := L.NewTable()
	logFuncs := map[string]func(string, ...any){
		"Info":  r.log.Info,
		"Debug": r.log.Debug,
		"Error": r.log.Error,
		"Warn":  r.log.Warn,
	}
	for name, logFunc := range logFuncs {
		L.SetField(logTable, name, L.NewFunction(func(L *lua.LState) int {
			logFunc(fmt.Sprintf("the script says: %s", L.ToString(1)), slog.String("script", path))
			return 0
		}))
	}
	L.SetGlobal("Log", logTable)

	prep := filepath.Join(r.dir, PrepareScript)
	if _, err := os.Stat(prep); err == nil {
		if err := L.DoFile(prep); err != nil {
			return nil, &rpc.RPCError{Code: rpc.ErrInternalError, Message: err.Error()}
		}
	}
	if err := L.DoFile(path); err != nil {
		return nil, &rpc.RPCError{Code: rpc.ErrInternalError, Message: err.Error()}
	}

	outTbl, ok := L.GetGlobal("Out").(*lua.LTable)
	if !ok {
		return nil, &rpc.RPCError{Code: rpc.ErrInternalError, Message: "Out is not a table"}
	}

	if errVal := outTbl.RawGetString("Error"); errVal != lua.LNil {
		errTbl, ok := errVal.(*lua.LTable)
		if !ok {
			return nil, &rpc.RPCError{Code: rpc.ErrInternalError, Message: "Out.Error is not a table"}
		}
		rpcErr := &rpc.RPCError{Code: rpc.ErrInternalError, Message: "Internal script error"}
		if c := errTbl.RawGetString("code"); c.Type() == lua.LTNumber {
			rpcErr.Code = int(c.(lua.LNumber))
		}
		if msg := errTbl.RawGetString("message"); msg.Type() == lua.LTString {
			rpcErr.Message = msg.String()
		}
		if data := errTbl.RawGetString("data"); data != lua.LNil {
			rpcErr.Data = ConvertLuaTypesToGolang(data)
		}
		r.log.Info("the script terminated with an error", slog.Int("code", rpcErr.Code), slog.String("message", rpcErr.Message))
		return nil, rpcErr
	}

	return ConvertLuaTypesToGolang(outTbl.RawGetString("Result")), nil
}
