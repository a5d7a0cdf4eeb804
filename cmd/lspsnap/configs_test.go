package main

import (
	"testing"

	"lspsnap/internal"
	"lspsnap/internal/hostenv"
)

// Every shipped configuration module must evaluate cleanly under the
// emulated environment and yield a command, filetypes, and
// documentation.
func TestShippedConfigs(t *testing.T) {
	const dir = "../../configs"

	names, err := enumerateModules(dir, nil)
	if err != nil {
		t.Fatalf("enumerateModules failed: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no shipped configuration modules found")
	}

	loader := internal.NewLoader(dir, hostenv.New())
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			raw, err := loader.Load(name)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			cfg := internal.Extract(name, raw)
			if cfg == nil {
				t.Fatal("extraction produced nothing")
			}
			if err := internal.ResolveDocs(cfg, loader.Path(name)); err != nil {
				t.Fatalf("documentation lookup failed: %v", err)
			}

			if cfg.Cmd == nil {
				t.Error("no command extracted")
			}
			if len(cfg.Filetypes) == 0 {
				t.Error("no filetypes extracted")
			}
			if cfg.Documentation == "" {
				t.Error("no documentation extracted")
			}
		})
	}
}
