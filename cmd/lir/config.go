package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"lir/internal/ir"
)

type toolConfig struct {
	Dump dumpConfig `toml:"dump"`
}

type dumpConfig struct {
	Types bool `toml:"types"`
}

// findLirToml walks parent directories from startDir looking for lir.toml.
func findLirToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "lir.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadDumpOptions resolves dump options from lir.toml, defaulting to typed
// output when no config (or no [dump] table) is present.
func loadDumpOptions(startDir string) (ir.DumpOptions, error) {
	opts := ir.DumpOptions{ShowTypes: true}

	path, ok, err := findLirToml(startDir)
	if err != nil || !ok {
		return opts, err
	}

	var cfg toolConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return opts, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("dump", "types") {
		opts.ShowTypes = cfg.Dump.Types
	}
	return opts, nil
}
