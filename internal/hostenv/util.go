package hostenv

import (
	"path"

	lua "github.com/yuin/gopher-lua"
)

// utilLoader preloads the helper module configuration modules require
// for root-directory detection. Resolvers never walk a real filesystem:
// every search immediately lands on the canned root.
func (e *Env) utilLoader(L *lua.LState) int {
	mod := L.NewTable()

	mod.RawSetString("root_pattern", L.NewFunction(e.luaRootPattern))
	mod.RawSetString("find_git_ancestor", L.NewFunction(e.cannedRootFn))
	mod.RawSetString("find_mercurial_ancestor", L.NewFunction(e.cannedRootFn))
	mod.RawSetString("find_package_json_ancestor", L.NewFunction(e.cannedRootFn))
	mod.RawSetString("find_node_modules_ancestor", L.NewFunction(e.cannedRootFn))
	mod.RawSetString("search_ancestors", L.NewFunction(e.luaSearchAncestors))
	mod.RawSetString("insert_package_json", L.NewFunction(luaInsertPackageJSON))
	mod.RawSetString("path", e.pathTable(L))

	L.Push(mod)
	return 1
}

// luaRootPattern returns a resolver closure, the way the real helper
// does, except the resolver always answers with the canned root.
func (e *Env) luaRootPattern(L *lua.LState) int {
	root := lua.LString(e.Root)
	L.Push(L.NewFunction(func(L *lua.LState) int {
		L.Push(root)
		return 1
	}))
	return 1
}

func (e *Env) cannedRootFn(L *lua.LState) int {
	L.Push(lua.LString(e.Root))
	return 1
}

// luaSearchAncestors invokes the predicate once with the canned root and
// reports the root on a truthy answer, mirroring the real helper's
// walk-up-and-test contract in a single step.
func (e *Env) luaSearchAncestors(L *lua.LState) int {
	fn := L.CheckFunction(2)
	L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: false}, lua.LString(e.Root))
	matched := L.Get(-1)
	L.Pop(1)
	if lua.LVAsBool(matched) {
		L.Push(lua.LString(e.Root))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

// Manifest inspection is a safe no-op: the result set is always empty.
func luaInsertPackageJSON(L *lua.LState) int {
	L.Push(L.NewTable())
	return 1
}

// pathTable provides util.path. Existence probes always succeed so a
// module can never bail out of computing its defaults.
func (e *Env) pathTable(L *lua.LState) *lua.LTable {
	p := L.NewTable()

	p.RawSetString("join", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.CheckString(i))
		}
		L.Push(lua.LString(path.Join(parts...)))
		return 1
	}))
	p.RawSetString("dirname", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(path.Dir(L.CheckString(1))))
		return 1
	}))
	p.RawSetString("sanitize", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(path.Clean(L.CheckString(1))))
		return 1
	}))
	alwaysTrue := L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LTrue)
		return 1
	})
	p.RawSetString("exists", alwaysTrue)
	p.RawSetString("is_dir", alwaysTrue)
	p.RawSetString("is_file", alwaysTrue)

	return p
}
