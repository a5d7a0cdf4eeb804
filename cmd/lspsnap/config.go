package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ConfigsDir    string
	AbsConfigsDir string
	OutPath       string
	DocsPath      string
	HTMLPath      string
	ConfigFile    string
	Exclude       []string
}

// fileConfig is the optional YAML companion file. Precedence is
// defaults < file < flags.
type fileConfig struct {
	ConfigsDir string   `yaml:"configs_dir"`
	Output     string   `yaml:"output"`
	Docs       string   `yaml:"docs"`
	HTML       string   `yaml:"html"`
	Exclude    []string `yaml:"exclude"`
}

func ParseConfig() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.ConfigsDir, "configs", "./configs", "Directory of server configuration modules")
	flag.StringVar(&cfg.OutPath, "output", "./configurations.json", "Output path for the JSON report")
	flag.StringVar(&cfg.DocsPath, "docs", "", "Optional output path for the Markdown catalog")
	flag.StringVar(&cfg.HTMLPath, "html", "", "Optional output path for the HTML catalog")
	flag.StringVar(&cfg.ConfigFile, "config", "", "Optional YAML config file (flags take precedence)")

	flag.Parse()

	if cfg.ConfigFile != "" {
		if err := cfg.applyFile(); err != nil {
			return nil, err
		}
	}

	var err error
	cfg.AbsConfigsDir, err = filepath.Abs(cfg.ConfigsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configs directory: %w", err)
	}

	return cfg, nil
}

// applyFile merges values from the YAML file under any explicitly set
// flags.
func (c *Config) applyFile() error {
	data, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if fc.ConfigsDir != "" && !set["configs"] {
		c.ConfigsDir = fc.ConfigsDir
	}
	if fc.Output != "" && !set["output"] {
		c.OutPath = fc.Output
	}
	if fc.Docs != "" && !set["docs"] {
		c.DocsPath = fc.Docs
	}
	if fc.HTML != "" && !set["html"] {
		c.HTMLPath = fc.HTML
	}
	c.Exclude = fc.Exclude
	return nil
}
