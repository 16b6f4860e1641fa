// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/um-tesoreria/wikisync/internal/domain"
)

// Loader loads configuration from a TOML file.
type Loader struct {
	path string
}

// NewLoader creates a Loader for the given config file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load returns the configuration with defaults applied. A missing file
// is not an error: the defaults stand. Credentials never come from the
// file; the caller resolves them from the environment exactly once and
// sets them on the returned value.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	data, err := os.ReadFile(l.path) //nolint:gosec // path comes from the invocation
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", l.path, err)
	}
	return cfg, nil
}
