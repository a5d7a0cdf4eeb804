package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"lspsnap/internal"
	"lspsnap/internal/hostenv"
)

const moduleSuffix = ".lua"

// Pipeline orchestrates a full extraction run: enumerate, load, extract,
// resolve docs, aggregate, write. Strictly sequential; a failing module
// is warned about and skipped, never fatal.
type Pipeline struct {
	cfg    *Config
	loader *internal.Loader
}

// NewPipeline assembles the pipeline with the emulated host environment
// injected into the loader.
func NewPipeline(cfg *Config) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		loader: internal.NewLoader(cfg.AbsConfigsDir, hostenv.New()),
	}
}

func (p *Pipeline) Run() error {
	names, err := enumerateModules(p.cfg.AbsConfigsDir, p.cfg.Exclude)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d config files in %s\n", len(names), p.cfg.AbsConfigsDir)

	report := internal.NewReport()
	for _, name := range names {
		fmt.Printf("Processing %s\n", name)

		raw, err := p.loader.Load(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s failed to load: %v. Skipping.\n", name, err)
			continue
		}

		cfg := internal.Extract(name, raw)
		if cfg == nil {
			fmt.Fprintf(os.Stderr, "Warning: %s produced no usable configuration. Skipping.\n", name)
			continue
		}

		if err := internal.ResolveDocs(cfg, p.loader.Path(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s documentation lookup failed: %v\n", name, err)
		}

		report.Add(cfg)
	}

	data, err := report.MarshalIndented()
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	if err := os.WriteFile(p.cfg.OutPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Report generated at: %s (%d servers, %d bytes)\n", p.cfg.OutPath, report.Len(), len(data))

	return p.writeCatalog(report)
}

// writeCatalog emits the optional Markdown and HTML renderings of the
// same report.
func (p *Pipeline) writeCatalog(report *internal.Report) error {
	if p.cfg.DocsPath == "" && p.cfg.HTMLPath == "" {
		return nil
	}

	gen := internal.NewDocsGenerator()
	markdown := gen.GenerateMarkdown(report)

	if p.cfg.DocsPath != "" {
		if err := os.WriteFile(p.cfg.DocsPath, []byte(markdown), 0o644); err != nil {
			return fmt.Errorf("failed to write docs file: %w", err)
		}
		fmt.Printf("Catalog generated at: %s\n", p.cfg.DocsPath)
	}
	if p.cfg.HTMLPath != "" {
		if err := os.WriteFile(p.cfg.HTMLPath, []byte(internal.RenderMarkdown(markdown)), 0o644); err != nil {
			return fmt.Errorf("failed to write html file: %w", err)
		}
		fmt.Printf("HTML catalog generated at: %s\n", p.cfg.HTMLPath)
	}
	return nil
}

// enumerateModules lists the logical module names in the configs
// directory, suffix stripped, sorted ascending. Excluded names are
// reported and skipped.
func enumerateModules(dir string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read configs directory: %w", err)
	}

	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), moduleSuffix) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), moduleSuffix)
		if skip[name] {
			fmt.Printf("Skipping %s (excluded)\n", name)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
