package hostenv

import (
	"fmt"
	"path"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// vimTable builds the emulated vim global. Probes answer with canned
// values, notifications print or do nothing, and the table helpers keep
// their real semantics since modules depend on them for their defaults.
func (e *Env) vimTable(L *lua.LState) *lua.LTable {
	vim := L.NewTable()

	vim.RawSetString("fn", e.fnTable(L))
	vim.RawSetString("fs", e.fsTable(L))
	vim.RawSetString("json", jsonTable(L))

	// loop and uv are the same object, matching the host's aliasing.
	loop := e.loopTable(L)
	vim.RawSetString("loop", loop)
	vim.RawSetString("uv", loop)

	vim.RawSetString("env", L.NewTable())

	levels := L.NewTable()
	for i, name := range []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "OFF"} {
		levels.RawSetString(name, lua.LNumber(i))
	}
	log := L.NewTable()
	log.RawSetString("levels", levels)
	vim.RawSetString("log", log)

	notify := L.NewFunction(func(L *lua.LState) int {
		fmt.Fprintln(e.Output, L.OptString(1, ""))
		return 0
	})
	vim.RawSetString("notify", notify)
	vim.RawSetString("notify_once", notify)

	// The host schedules callbacks onto its event loop; here everything
	// runs synchronously in evaluation order.
	vim.RawSetString("schedule", L.NewFunction(func(L *lua.LState) int {
		fn := L.CheckFunction(1)
		L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: false})
		return 0
	}))

	vim.RawSetString("system", L.NewFunction(e.luaSystem))

	vim.RawSetString("inspect", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(L.Get(1).String()))
		return 1
	}))

	vim.RawSetString("empty_dict", L.NewFunction(func(L *lua.LState) int {
		L.Push(L.NewTable())
		return 1
	}))

	installTableHelpers(L, vim)
	return vim
}

// fnTable covers the vim.fn functions modules call while computing their
// defaults. Executable lookups always succeed so a missing binary on the
// extraction machine never changes the snapshot.
func (e *Env) fnTable(L *lua.LState) *lua.LTable {
	fn := L.NewTable()

	fn.RawSetString("executable", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(1))
		return 1
	}))
	fn.RawSetString("exepath", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(CannedBin + "/" + path.Base(L.CheckString(1))))
		return 1
	}))
	fn.RawSetString("getcwd", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(e.Root))
		return 1
	}))
	fn.RawSetString("expand", L.NewFunction(func(L *lua.LState) int {
		arg := L.CheckString(1)
		if strings.HasPrefix(arg, "~") {
			arg = CannedHome + arg[1:]
		}
		L.Push(lua.LString(arg))
		return 1
	}))
	fn.RawSetString("stdpath", L.NewFunction(func(L *lua.LState) int {
		switch L.CheckString(1) {
		case "config":
			L.Push(lua.LString(CannedHome + "/.config/nvim"))
		case "cache":
			L.Push(lua.LString(CannedHome + "/.cache/nvim"))
		default:
			L.Push(lua.LString(CannedHome + "/.local/share/nvim"))
		}
		return 1
	}))
	fn.RawSetString("has", L.NewFunction(func(L *lua.LState) int {
		switch L.CheckString(1) {
		case "win32", "win64", "mac", "macunix":
			L.Push(lua.LNumber(0))
		default:
			L.Push(lua.LNumber(1))
		}
		return 1
	}))
	fn.RawSetString("fnamemodify", L.NewFunction(func(L *lua.LState) int {
		p := L.CheckString(1)
		switch L.OptString(2, "") {
		case ":h":
			L.Push(lua.LString(path.Dir(p)))
		case ":t":
			L.Push(lua.LString(path.Base(p)))
		case ":e":
			L.Push(lua.LString(strings.TrimPrefix(path.Ext(p), ".")))
		default:
			L.Push(lua.LString(p))
		}
		return 1
	}))
	fn.RawSetString("glob", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(""))
		return 1
	}))
	fn.RawSetString("system", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(""))
		return 1
	}))
	fn.RawSetString("systemlist", L.NewFunction(func(L *lua.LState) int {
		L.Push(L.NewTable())
		return 1
	}))

	return fn
}

// fsTable covers vim.fs. Every lookup resolves inside the canned root.
func (e *Env) fsTable(L *lua.LState) *lua.LTable {
	fs := L.NewTable()

	fs.RawSetString("dirname", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(path.Dir(L.CheckString(1))))
		return 1
	}))
	fs.RawSetString("basename", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(path.Base(L.CheckString(1))))
		return 1
	}))
	fs.RawSetString("normalize", L.NewFunction(func(L *lua.LState) int {
		p := strings.ReplaceAll(L.CheckString(1), "\\", "/")
		if strings.HasPrefix(p, "~") {
			p = CannedHome + p[1:]
		}
		L.Push(lua.LString(path.Clean(p)))
		return 1
	}))
	fs.RawSetString("joinpath", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.CheckString(i))
		}
		L.Push(lua.LString(path.Join(parts...)))
		return 1
	}))
	fs.RawSetString("find", L.NewFunction(func(L *lua.LState) int {
		found := L.NewTable()
		switch names := L.Get(1).(type) {
		case lua.LString:
			found.Append(lua.LString(path.Join(e.Root, string(names))))
		case *lua.LTable:
			if first, ok := names.RawGetInt(1).(lua.LString); ok {
				found.Append(lua.LString(path.Join(e.Root, string(first))))
			}
		}
		L.Push(found)
		return 1
	}))
	fs.RawSetString("root", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(e.Root))
		return 1
	}))

	return fs
}

// loopTable covers the libuv surface. Stat reports every path as an
// existing regular file; manifest files additionally get a plausible
// size so modules that branch on it take their real code path.
func (e *Env) loopTable(L *lua.LState) *lua.LTable {
	loop := L.NewTable()

	loop.RawSetString("fs_stat", L.NewFunction(func(L *lua.LState) int {
		stat := L.NewTable()
		stat.RawSetString("type", lua.LString("file"))
		base := path.Base(L.CheckString(1))
		if manifestNames[base] {
			stat.RawSetString("size", lua.LNumber(len(manifestContent(base))))
		}
		L.Push(stat)
		return 1
	}))
	loop.RawSetString("os_homedir", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(CannedHome))
		return 1
	}))
	loop.RawSetString("cwd", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(e.Root))
		return 1
	}))

	return loop
}

// luaSystem emulates vim.system. No process is spawned: any completion
// callback is invoked immediately, in the same call, with a canned empty
// success, and the returned object resolves to the same result.
func (e *Env) luaSystem(L *lua.LState) int {
	result := L.NewTable()
	result.RawSetString("code", lua.LNumber(0))
	result.RawSetString("signal", lua.LNumber(0))
	result.RawSetString("stdout", lua.LString(""))
	result.RawSetString("stderr", lua.LString(""))

	for i := 2; i <= L.GetTop(); i++ {
		if onExit, ok := L.Get(i).(*lua.LFunction); ok {
			L.CallByParam(lua.P{Fn: onExit, NRet: 0, Protect: false}, result)
			break
		}
	}

	obj := L.NewTable()
	obj.RawSetString("wait", L.NewFunction(func(L *lua.LState) int {
		L.Push(result)
		return 1
	}))
	L.Push(obj)
	return 1
}
