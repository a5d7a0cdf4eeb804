// ---
// title: Main entry for cli
// ---
//
// The main file entry point for the extraction CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run keeps a single recovery point at the very top: anything escaping
// the per-module isolation inside the pipeline becomes an error exit
// instead of a crash.
func run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	cfg, err := ParseConfig()
	if err != nil {
		return err
	}

	pipeline := NewPipeline(cfg)
	return pipeline.Run()
}
