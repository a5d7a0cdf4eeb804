// Package hostenv emulates the editor host API that language server
// configuration modules are written against, so they can be evaluated
// offline without the editor, real file I/O, or process spawning.
package hostenv

import (
	"io"
	"os"
	"path"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Canned results handed out by the emulated probes. Every module sees the
// same deterministic answers regardless of the machine the extraction
// runs on.
const (
	CannedRoot = "/path/to/project"
	CannedBin  = "/usr/bin"
	CannedHome = "/home/user"
)

const (
	cannedJSONManifest = `{"name": "example", "version": "0.0.1"}`
	cannedTOMLManifest = "[package]\nname = \"example\"\nversion = \"0.0.1\"\n"
)

// manifestNames are project metadata files some configuration modules
// inspect at evaluation time to refine their defaults.
var manifestNames = map[string]bool{
	"package.json":   true,
	"deno.json":      true,
	"composer.json":  true,
	"Cargo.toml":     true,
	"pyproject.toml": true,
	"go.mod":         true,
}

// Env bundles every emulated host function. It is installed into a fresh
// Lua state before each module is evaluated, so the emulation is an
// explicit dependency of the loader rather than shared process state.
type Env struct {
	// Root is the project root reported by every root resolver.
	Root string
	// Output receives the print-to-console stand-ins for host
	// notifications.
	Output io.Writer
}

func New() *Env {
	return &Env{
		Root:   CannedRoot,
		Output: os.Stdout,
	}
}

// Install wires the emulated API into the given state: the vim global,
// the preloaded util module, and the io.open override for manifest
// files. It must run before any configuration module is loaded.
func (e *Env) Install(L *lua.LState) {
	L.SetGlobal("vim", e.vimTable(L))
	L.PreloadModule("util", e.utilLoader)
	L.PreloadModule("lspconfig.util", e.utilLoader)
	e.patchOpen(L)
}

// patchOpen replaces io.open so that opening a manifest file yields
// canned manifest content and anything else fails the way Lua reports a
// missing file. No real file is ever touched.
func (e *Env) patchOpen(L *lua.LState) {
	iot, ok := L.GetGlobal("io").(*lua.LTable)
	if !ok {
		return
	}
	iot.RawSetString("open", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		base := path.Base(name)
		if !manifestNames[base] {
			L.Push(lua.LNil)
			L.Push(lua.LString(name + ": No such file or directory (emulated)"))
			return 2
		}
		L.Push(newFileHandle(L, manifestContent(base)))
		return 1
	}))
}

func manifestContent(base string) string {
	if strings.HasSuffix(base, ".json") {
		return cannedJSONManifest
	}
	return cannedTOMLManifest
}

// newFileHandle builds a minimal file-like object: read returns the full
// canned content once, lines iterates it line by line, close always
// succeeds.
func newFileHandle(L *lua.LState, content string) *lua.LTable {
	handle := L.NewTable()
	consumed := false
	handle.RawSetString("read", L.NewFunction(func(L *lua.LState) int {
		if consumed {
			L.Push(lua.LNil)
			return 1
		}
		consumed = true
		L.Push(lua.LString(content))
		return 1
	}))
	handle.RawSetString("lines", L.NewFunction(func(L *lua.LState) int {
		lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
		index := 0
		L.Push(L.NewFunction(func(L *lua.LState) int {
			if index >= len(lines) {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(lua.LString(lines[index]))
			index++
			return 1
		}))
		return 1
	}))
	handle.RawSetString("close", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LTrue)
		return 1
	}))
	return handle
}
