// Package config loads the optional per-repository sandbox configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the config file name, looked up in the repository root.
const File = ".sandbox.yaml"

// DefaultPortCount is how many host ports a new container gets when the
// config does not say otherwise.
const DefaultPortCount = 3

// Config tunes container creation. Every field is optional.
type Config struct {
	// Ports is the number of host ports forwarded into new containers.
	Ports int `yaml:"ports"`
	// Image overrides the default sandbox-template:{repo} image tag.
	Image string `yaml:"image"`
	// Env adds environment variables to new containers.
	Env map[string]string `yaml:"env"`
	// Mounts adds docker -v specs to new containers.
	Mounts []string `yaml:"mounts"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Ports: DefaultPortCount}
}

// Load reads .sandbox.yaml from repoRoot. A missing file yields the
// defaults; a malformed file is an error.
func Load(repoRoot string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(repoRoot, File))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", File, err)
	}
	if cfg.Ports <= 0 {
		cfg.Ports = DefaultPortCount
	}
	return cfg, nil
}
