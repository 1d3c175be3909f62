package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadFile reads a YAML config. Keys missing from the file keep the values
// already in base.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}

	cfg := base
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
