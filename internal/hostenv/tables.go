package hostenv

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// installTableHelpers adds the vim table and string utilities. Unlike
// the probes these keep their genuine semantics: modules build their
// default settings with them, so a no-op stand-in would corrupt the
// extracted data.
func installTableHelpers(L *lua.LState, vim *lua.LTable) {
	vim.RawSetString("tbl_deep_extend", L.NewFunction(luaDeepExtend))
	vim.RawSetString("tbl_extend", L.NewFunction(luaExtend))
	vim.RawSetString("tbl_filter", L.NewFunction(luaFilter))
	vim.RawSetString("tbl_map", L.NewFunction(luaMap))
	vim.RawSetString("tbl_keys", L.NewFunction(luaKeys))
	vim.RawSetString("tbl_count", L.NewFunction(luaCount))
	vim.RawSetString("tbl_isempty", L.NewFunction(luaIsEmpty))
	vim.RawSetString("tbl_contains", L.NewFunction(luaContains))
	vim.RawSetString("list_extend", L.NewFunction(luaListExtend))
	vim.RawSetString("deepcopy", L.NewFunction(luaDeepCopy))
	vim.RawSetString("startswith", L.NewFunction(luaStartswith))
	vim.RawSetString("endswith", L.NewFunction(luaEndswith))
	vim.RawSetString("split", L.NewFunction(luaSplit))
	vim.RawSetString("trim", L.NewFunction(luaTrim))
}

// isList reports whether a table uses its array part, which the merge
// treats as a value to replace rather than a map to descend into.
func isList(t *lua.LTable) bool {
	return t.MaxN() > 0
}

func luaDeepExtend(L *lua.LState) int {
	behavior := L.CheckString(1)
	if behavior != "force" && behavior != "keep" && behavior != "error" {
		L.RaiseError("invalid behavior: %s", behavior)
	}
	result := L.NewTable()
	for i := 2; i <= L.GetTop(); i++ {
		src := L.OptTable(i, nil)
		if src == nil {
			continue
		}
		mergeInto(L, result, src, behavior)
	}
	L.Push(result)
	return 1
}

func mergeInto(L *lua.LState, dst, src *lua.LTable, behavior string) {
	src.ForEach(func(k, v lua.LValue) {
		sv, srcIsMap := v.(*lua.LTable)
		existing := dst.RawGet(k)
		dv, dstIsMap := existing.(*lua.LTable)
		switch {
		case srcIsMap && !isList(sv) && dstIsMap && !isList(dv):
			mergeInto(L, dv, sv, behavior)
		case existing == lua.LNil || behavior == "force":
			dst.RawSet(k, v)
		case behavior == "error":
			L.RaiseError("key found in more than one map: %s", k.String())
		}
	})
}

func luaExtend(L *lua.LState) int {
	behavior := L.CheckString(1)
	result := L.NewTable()
	for i := 2; i <= L.GetTop(); i++ {
		src := L.OptTable(i, nil)
		if src == nil {
			continue
		}
		src.ForEach(func(k, v lua.LValue) {
			existing := result.RawGet(k)
			switch {
			case existing == lua.LNil || behavior == "force":
				result.RawSet(k, v)
			case behavior == "error":
				L.RaiseError("key found in more than one map: %s", k.String())
			}
		})
	}
	L.Push(result)
	return 1
}

func luaFilter(L *lua.LState) int {
	fn := L.CheckFunction(1)
	src := L.CheckTable(2)
	result := L.NewTable()
	src.ForEach(func(_, v lua.LValue) {
		L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: false}, v)
		keep := L.Get(-1)
		L.Pop(1)
		if lua.LVAsBool(keep) {
			result.Append(v)
		}
	})
	L.Push(result)
	return 1
}

func luaMap(L *lua.LState) int {
	fn := L.CheckFunction(1)
	src := L.CheckTable(2)
	result := L.NewTable()
	src.ForEach(func(k, v lua.LValue) {
		L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: false}, v)
		result.RawSet(k, L.Get(-1))
		L.Pop(1)
	})
	L.Push(result)
	return 1
}

func luaKeys(L *lua.LState) int {
	src := L.CheckTable(1)
	result := L.NewTable()
	src.ForEach(func(k, _ lua.LValue) {
		result.Append(k)
	})
	L.Push(result)
	return 1
}

func luaCount(L *lua.LState) int {
	count := 0
	L.CheckTable(1).ForEach(func(_, _ lua.LValue) {
		count++
	})
	L.Push(lua.LNumber(count))
	return 1
}

func luaIsEmpty(L *lua.LState) int {
	empty := true
	L.CheckTable(1).ForEach(func(_, _ lua.LValue) {
		empty = false
	})
	L.Push(lua.LBool(empty))
	return 1
}

func luaContains(L *lua.LState) int {
	src := L.CheckTable(1)
	needle := L.Get(2)
	found := false
	src.ForEach(func(_, v lua.LValue) {
		if v == needle || v.String() == needle.String() && v.Type() == needle.Type() {
			found = true
		}
	})
	L.Push(lua.LBool(found))
	return 1
}

func luaListExtend(L *lua.LState) int {
	dst := L.CheckTable(1)
	src := L.CheckTable(2)
	for i := 1; i <= src.MaxN(); i++ {
		dst.Append(src.RawGetInt(i))
	}
	L.Push(dst)
	return 1
}

func luaDeepCopy(L *lua.LState) int {
	L.Push(deepCopyValue(L, L.Get(1)))
	return 1
}

func deepCopyValue(L *lua.LState, v lua.LValue) lua.LValue {
	src, ok := v.(*lua.LTable)
	if !ok {
		return v
	}
	dst := L.NewTable()
	src.ForEach(func(k, item lua.LValue) {
		dst.RawSet(k, deepCopyValue(L, item))
	})
	return dst
}

func luaStartswith(L *lua.LState) int {
	L.Push(lua.LBool(strings.HasPrefix(L.CheckString(1), L.CheckString(2))))
	return 1
}

func luaEndswith(L *lua.LState) int {
	L.Push(lua.LBool(strings.HasSuffix(L.CheckString(1), L.CheckString(2))))
	return 1
}

func luaSplit(L *lua.LState) int {
	parts := strings.Split(L.CheckString(1), L.CheckString(2))
	result := L.NewTable()
	for _, part := range parts {
		result.Append(lua.LString(part))
	}
	L.Push(result)
	return 1
}

func luaTrim(L *lua.LState) int {
	L.Push(lua.LString(strings.TrimSpace(L.CheckString(1))))
	return 1
}
