// Package config loads the optional YAML run configuration. Every value
// can also be set on the command line; flags override file values.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultShrinkFactor matches the reference tool's default.
const DefaultShrinkFactor = 0.1

// Run holds one transform invocation's values. The core pipeline consumes
// only ShrinkFactor and Periodic; the rest name the collaborator files.
type Run struct {
	Input        string  `yaml:"input"`
	Centroids    string  `yaml:"centroids"`
	Output       string  `yaml:"output,omitempty"`
	ShrinkFactor float64 `yaml:"shrink_factor"`
	Periodic     bool    `yaml:"periodic"`
	Preview      string  `yaml:"preview,omitempty"`
}

// Default returns a Run with default values.
func Default() Run {
	return Run{ShrinkFactor: DefaultShrinkFactor}
}

// Load reads a Run from a YAML file, applied over defaults. Unknown keys
// are rejected to catch typos.
func Load(path string) (Run, error) {
	r := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return r, fmt.Errorf("config: %s: %w", path, err)
	}
	return r, nil
}

// Validate checks that the run names its inputs. The shrink factor range
// is deliberately not enforced: out-of-range values are accepted and
// simply produce extreme geometry.
func (r Run) Validate() error {
	if r.Input == "" {
		return fmt.Errorf("config: input mesh file not set")
	}
	if r.Centroids == "" {
		return fmt.Errorf("config: centroid file not set")
	}
	return nil
}

// OutputPath returns the configured output path, defaulting to the input
// stem with a .modified.inp suffix.
func (r Run) OutputPath() string {
	if r.Output != "" {
		return r.Output
	}
	return strings.TrimSuffix(r.Input, ".inp") + ".modified.inp"
}
