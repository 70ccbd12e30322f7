// Package config loads the REPL's .izirc.yaml file (spec §6.5
// expansion), parsed with goccy/go-yaml the way the teacher's own
// indirect dependency graph already pulls in that library over
// gopkg.in/yaml.v3.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds REPL preferences. Every field has a documented zero
// value so a missing or partial .izirc.yaml is never an error.
type Config struct {
	// Prompt is printed before each REPL line. Defaults to "izi> ".
	Prompt string `yaml:"prompt"`
	// Optimize runs the optimizer pass on each REPL line before
	// evaluation, matching the `run` subcommand's --optimize flag.
	Optimize bool `yaml:"optimize"`
	// Color enables ANSI-colored diagnostic output.
	Color bool `yaml:"color"`
	// HistoryFile, if set, is where REPL line history is appended.
	HistoryFile string `yaml:"history_file"`
}

// Default returns the configuration used when no .izirc.yaml is found.
func Default() *Config {
	return &Config{Prompt: "izi> ", Optimize: false, Color: true}
}

// Load reads .izirc.yaml from dir (typically the current working
// directory), falling back to Default() if the file does not exist.
// A malformed file is still an error -- a typo in config should not be
// silently ignored.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ".izirc.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
