package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package  packageConfig  `toml:"package"`
	Library  libraryConfig  `toml:"library"`
	Validate validateConfig `toml:"validate"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type libraryConfig struct {
	Dir string `toml:"dir"`
}

type validateConfig struct {
	Paths []string `toml:"paths"`
}

// findProjectToml walks up from startDir until it finds a sysml.toml.
func findProjectToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "sysml.toml")
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

// loadProjectManifest loads the nearest manifest, if any. A missing
// manifest is not an error; flags and defaults take over.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findProjectToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	root := filepath.Dir(manifestPath)
	return &projectManifest{
		Path:   manifestPath,
		Root:   root,
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}

// manifestLibraryDir resolves the [library].dir entry against the
// manifest location.
func (m *projectManifest) manifestLibraryDir() string {
	if m == nil {
		return ""
	}
	dir := strings.TrimSpace(m.Config.Library.Dir)
	if dir == "" {
		return ""
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}

// manifestValidatePaths resolves [validate].paths against the manifest
// location; used when the validate command gets no arguments.
func (m *projectManifest) manifestValidatePaths() []string {
	if m == nil {
		return nil
	}
	paths := make([]string, 0, len(m.Config.Validate.Paths))
	for _, p := range m.Config.Validate.Paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, filepath.FromSlash(p))
		}
		paths = append(paths, p)
	}
	return paths
}
