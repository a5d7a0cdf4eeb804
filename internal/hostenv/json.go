package hostenv

import (
	"encoding/json"

	lua "github.com/yuin/gopher-lua"
)

// jsonTable backs vim.json with real encode/decode semantics, since
// modules that read a manifest file immediately decode it.
func jsonTable(L *lua.LState) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("decode", L.NewFunction(luaJSONDecode))
	tbl.RawSetString("encode", L.NewFunction(luaJSONEncode))
	return tbl
}

func luaJSONDecode(L *lua.LState) int {
	var decoded any
	if err := json.Unmarshal([]byte(L.CheckString(1)), &decoded); err != nil {
		L.RaiseError("invalid json: %v", err)
	}
	L.Push(toLuaValue(L, decoded))
	return 1
}

func luaJSONEncode(L *lua.LState) int {
	encoded, err := json.Marshal(fromLuaValue(L.Get(1)))
	if err != nil {
		L.RaiseError("cannot encode value: %v", err)
	}
	L.Push(lua.LString(encoded))
	return 1
}

func toLuaValue(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case []any:
		tbl := L.NewTable()
		for _, item := range x {
			tbl.Append(toLuaValue(L, item))
		}
		return tbl
	case map[string]any:
		tbl := L.NewTable()
		for key, item := range x {
			tbl.RawSetString(key, toLuaValue(L, item))
		}
		return tbl
	default:
		return lua.LNil
	}
}

func fromLuaValue(v lua.LValue) any {
	switch x := v.(type) {
	case lua.LBool:
		return bool(x)
	case lua.LNumber:
		return float64(x)
	case lua.LString:
		return string(x)
	case *lua.LTable:
		if n := x.MaxN(); n > 0 {
			list := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				list = append(list, fromLuaValue(x.RawGetInt(i)))
			}
			return list
		}
		m := make(map[string]any)
		x.ForEach(func(k, item lua.LValue) {
			m[k.String()] = fromLuaValue(item)
		})
		return m
	default:
		return nil
	}
}
