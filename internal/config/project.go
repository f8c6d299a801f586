package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rshade/varbrowse/internal/logging"
)

// EnvProjectDir names a directory holding .varbrowse.yaml.
const EnvProjectDir = "VARBROWSE_PROJECT_DIR"

// ErrNoProject is returned by FindProject when no ancestor holds an overlay.
var ErrNoProject = errors.New("no " + projectFileName + " found")

// ResolveProjectDir determines the directory whose .varbrowse.yaml overlays
// the user configuration. It checks (in order):
//  1. flagValue (--project-dir)
//  2. VARBROWSE_PROJECT_DIR
//  3. FindProject(startDir) walk-up
//
// Returns an absolute path, or "" if no project was found.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbs(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbs(ctx, envDir)
	}

	dir, err := FindProject(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}
	return dir
}

// FindProject walks up from dir looking for .varbrowse.yaml and returns the
// directory that contains it.
func FindProject(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	for {
		if _, statErr := os.Stat(filepath.Join(current, projectFileName)); statErr == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNoProject
		}
		current = parent
	}
}

func toAbs(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		return dir
	}
	return abs
}
