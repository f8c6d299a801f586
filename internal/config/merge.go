package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML keys that an overlay may replace.
const (
	keyGrid    = "grid"
	keyAPI     = "api"
	keyCache   = "cache"
	keyLogging = "logging"
)

// ShallowMergeYAML loads a YAML file and replaces each top-level section of
// target that the file names. Sections absent from the file, and unknown keys,
// are left alone.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err := replaceSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// replaceSection decodes node into a zero value of the section type so the
// section is replaced rather than merged field by field.
func replaceSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyGrid:
		var v GridConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Grid = v
	case keyAPI:
		var v APIConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.API = v
	case keyCache:
		var v CacheConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Cache = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	}
	return nil
}
