package lua

import (
	"fmt"
	"reflect"

	lua "github.com/yuin/gopher-lua"
)

// ConvertLuaTypesToGolang maps a Lua value onto JSON-friendly Go values.
// Tables whose keys are exactly 1..n become slices, all others maps.
// An empty table is an empty slice.
func ConvertLuaTypesToGolang(value lua.LValue) any {
	switch value.Type() {
	case lua.LTString:
		return value.String()
	case lua.LTNumber:
		return float64(value.(lua.LNumber))
	case lua.LTBool:
		return bool(value.(lua.LBool))
	case lua.LTTable:
		tbl := value.(*lua.LTable)

		if n, ok := sequenceLen(tbl); ok {
			arr := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				arr = append(arr, ConvertLuaTypesToGolang(tbl.RawGetInt(i)))
			}
			return arr
		}

		result := make(map[string]any)
		tbl.ForEach(func(key, val lua.LValue) {
			result[key.String()] = ConvertLuaTypesToGolang(val)
		})
		return result

	case lua.LTNil:
		return nil
	default:
		return value.String()
	}
}

func ConvertGolangTypesToLua(L *lua.LState, val any) lua.LValue {
	if val == nil {
		return lua.LNil
	}

	rv := reflect.ValueOf(val)
	rt := rv.Type()

	switch rt.Kind() {
	case reflect.String:
		return lua.LString(rv.String())
	case reflect.Bool:
		return lua.LBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return lua.LNumber(rv.Float())

	case reflect.Slice, reflect.Array:
		tbl := L.NewTable()
		for i := 0; i < rv.Len(); i++ {
			tbl.RawSetInt(i+1, ConvertGolangTypesToLua(L, rv.Index(i).Interface()))
		}
		return tbl

	case reflect.Map:
		if rt.Key().Kind() == reflect.String {
			tbl := L.NewTable()
			for _, key := range rv.MapKeys() {
				tbl.RawSetString(key.String(), ConvertGolangTypesToLua(L, rv.MapIndex(key).Interface()))
			}
			return tbl
		}
	}
	return lua.LString(fmt.Sprintf("%v", val))
}

// sequenceLen reports whether the keys of tbl are exactly 1..n. Keys set
// out of order live in the hash part, so MaxN alone is not enough.
func sequenceLen(tbl *lua.LTable) (int, bool) {
	count, maxKey := 0, 0
	seq := true
	tbl.ForEach(func(key, _ lua.LValue) {
		count++
		num, ok := key.(lua.LNumber)
		if !ok || float64(num) != float64(int(num)) || int(num) < 1 {
			seq = false
			return
		}
		maxKey = max(maxKey, int(num))
	})
	if !seq || maxKey != count {
		return 0, false
	}
	return count, true
}
