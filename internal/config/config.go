// Package config loads optional run defaults from a YAML file. Values from
// the file sit below explicit command-line flags in precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults mirrors the flag surface of the remaster command.
type Defaults struct {
	Output    string   `yaml:"output"`
	Kickstart string   `yaml:"kickstart"`
	Kargs     []string `yaml:"kargs"`
	Verbose   bool     `yaml:"verbose"`
}

// Load reads and parses the defaults file at path.
func Load(path string) (*Defaults, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var defaults Defaults
	if err := yaml.Unmarshal(raw, &defaults); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &defaults, nil
}
