package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ProjectFilename is the per-repository config file, looked up in the
// directory the command runs in.
const ProjectFilename = ".launchpad.toml"

// ProjectConfig holds per-repository deployment settings. Created once by
// `launchpad init` and never auto-mutated afterward.
type ProjectConfig struct {
	Project ProjectSettings `toml:"project"`
	Deploy  DeploySettings  `toml:"deploy"`
}

type ProjectSettings struct {
	IOSPath  string `toml:"ios_path"`
	Scheme   string `toml:"scheme"`
	BundleID string `toml:"bundle_id"`
}

type DeploySettings struct {
	GitTag         bool `toml:"git_tag"`
	PushTags       bool `toml:"push_tags"`
	CleanArtifacts bool `toml:"clean_artifacts"`
}

// DefaultDeploySettings enables tagging, pushing, and artifact cleanup.
// Fields omitted from the [deploy] table keep these values.
func DefaultDeploySettings() DeploySettings {
	return DeploySettings{GitTag: true, PushTags: true, CleanArtifacts: true}
}

// ProjectPath returns the config file path for the given project directory.
func ProjectPath(dir string) string {
	return filepath.Join(dir, ProjectFilename)
}

// LoadProject reads the project config from dir, or returns (nil, nil)
// when the file does not exist. The directory is an explicit parameter so
// the config layer stays testable without chdir games.
func LoadProject(dir string) (*ProjectConfig, error) {
	path := ProjectPath(dir)

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Pre-seeding the defaults means fields absent from the document keep
	// them, matching the serde default_true behavior users rely on.
	cfg := ProjectConfig{Deploy: DefaultDeploySettings()}
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveProject writes the project config into dir. It does not guard
// against an existing file; callers decide whether overwriting is allowed.
func SaveProject(dir string, cfg *ProjectConfig) error {
	content, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(ProjectPath(dir), content, 0o644)
}
