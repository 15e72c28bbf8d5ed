package lua

import (
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// LuaPool hands out fresh interpreter states. A returned state is closed
// and replaced, so no globals leak from one script run into the next.
type LuaPool struct {
	pool sync.Pool
}

func NewLuaPool() *LuaPool {
	return &LuaPool{
		pool: sync.Pool{
			New: func() any {
				return lua.NewState()
			},
		},
	}
}

func (lp *LuaPool) Get() *lua.LState {
	return lp.pool.Get().(*lua.LState)
}

func (lp *LuaPool) Put(L *lua.LState) {
	L.Close()
	lp.pool.Put(lua.NewState())
}
