package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"lspsnap/internal/hostenv"
)

func writeModule(t *testing.T, dir, name, source string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".lua"), []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderLoadsValidModule(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "good", `
		local util = require("util")
		return {
			cmd = { "good-ls" },
			root_dir = util.root_pattern(".git"),
		}
	`)

	loader := NewLoader(dir, hostenv.New())
	raw, err := loader.Load("good")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tbl, ok := raw.(*lua.LTable)
	if !ok {
		t.Fatalf("Load returned %T, want table", raw)
	}
	if tbl.RawGetString("root_dir").Type() != lua.LTFunction {
		t.Error("root_dir resolver was not produced by the emulated helper")
	}
}

func TestLoaderFailureNamesModule(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		source string
	}{
		{
			name:   "syntax_error",
			source: "return {",
		},
		{
			name:   "runtime_error",
			source: `error("boom")`,
		},
		{
			name:   "missing_substitute",
			source: `return { cmd = vim.fn.no_such_helper("x") }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeModule(t, dir, tt.name, tt.source)
			loader := NewLoader(dir, hostenv.New())
			_, err := loader.Load(tt.name)
			if err == nil {
				t.Fatal("Load should fail")
			}
			if !strings.Contains(err.Error(), tt.name) {
				t.Errorf("error %q does not name the module", err.Error())
			}
		})
	}
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(t.TempDir(), hostenv.New())
	_, err := loader.Load("absent")
	if err == nil {
		t.Fatal("Load of a missing module should fail")
	}
	if !strings.Contains(err.Error(), "absent") {
		t.Errorf("error %q does not name the module", err.Error())
	}
}

func TestLoaderIsolation(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "bad", `error("broken module")`)
	writeModule(t, dir, "ok", `return { cmd = { "fine" } }`)

	loader := NewLoader(dir, hostenv.New())
	if _, err := loader.Load("bad"); err == nil {
		t.Fatal("bad module should fail to load")
	}
	raw, err := loader.Load("ok")
	if err != nil {
		t.Fatalf("a failed module must not poison later loads: %v", err)
	}
	if Extract("ok", raw) == nil {
		t.Error("ok module did not produce a usable config")
	}
}

func TestLoaderModuleWithNoReturn(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "silent", `local x = 1`)

	loader := NewLoader(dir, hostenv.New())
	raw, err := loader.Load("silent")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if Extract("silent", raw) != nil {
		t.Error("module returning nothing should extract to nil")
	}
}
