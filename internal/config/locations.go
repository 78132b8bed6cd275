package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

//go:embed locations.yaml
var defaultLocations []byte

type locationFile struct {
	Locations []string `yaml:"locations"`
}

// Locations loads the candidate pool from game.locations_file, or the
// built-in pool when no file is set.
func (c *Config) Locations() (models.LocationPool, error) {
	if c.Game.LocationsFile == "" {
		return ParseLocations(defaultLocations)
	}
	data, err := os.ReadFile(c.Game.LocationsFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.Game.LocationsFile, err)
	}
	pool, err := ParseLocations(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", c.Game.LocationsFile, err)
	}
	return pool, nil
}

// ParseLocations decodes a YAML document with a top-level locations list.
// Names are trimmed; blanks and duplicates are rejected.
func ParseLocations(data []byte) (models.LocationPool, error) {
	var f locationFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Locations) == 0 {
		return nil, errors.New("no locations")
	}

	seen := make(map[string]bool, len(f.Locations))
	pool := make(models.LocationPool, 0, len(f.Locations))
	for i, name := range f.Locations {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("location %d is blank", i+1)
		}
		if seen[strings.ToLower(name)] {
			return nil, fmt.Errorf("duplicate location %q", name)
		}
		seen[strings.ToLower(name)] = true
		pool = append(pool, name)
	}
	return pool, nil
}
