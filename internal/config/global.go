// Package config reads and writes launchpad's two TOML configuration files:
// the machine-wide Apple credentials under the config directory, and the
// per-repository .launchpad.toml. Nothing is cached; every load re-reads
// the filesystem so concurrent edits by the user are always picked up.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override the on-disk global config. The
// override is all-or-nothing: either all three are set and the file is
// never touched, or the file is consulted.
const (
	EnvKeyID     = "APPLE_API_KEY_ID"
	EnvIssuerID  = "APPLE_API_ISSUER_ID"
	EnvKeyPath   = "APPLE_API_KEY_PATH"
	EnvConfigDir = "LAUNCHPAD_CONFIG_DIR"
)

// ErrNoConfigDir is returned when neither LAUNCHPAD_CONFIG_DIR nor the
// user's home directory can be resolved.
var ErrNoConfigDir = errors.New("could not determine config directory")

// GlobalConfig holds App Store Connect API credentials, independent of any
// single project.
type GlobalConfig struct {
	Apple AppleConfig `toml:"apple"`
}

type AppleConfig struct {
	KeyID    string `toml:"key_id"`
	IssuerID string `toml:"issuer_id"`
	KeyPath  string `toml:"key_path"`
}

// Dir returns the launchpad config directory: LAUNCHPAD_CONFIG_DIR when
// set, otherwise ~/.launchpad.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNoConfigDir
	}
	return filepath.Join(home, ".launchpad"), nil
}

// GlobalPath returns the path of the global config file.
func GlobalPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// KeysDir returns the directory credential files are copied into.
func KeysDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keys"), nil
}

// LoadGlobal returns the global config, or (nil, nil) when none is
// configured. The APPLE_API_* environment variables take precedence over
// the config file when all three are present.
func LoadGlobal() (*GlobalConfig, error) {
	keyID := os.Getenv(EnvKeyID)
	issuerID := os.Getenv(EnvIssuerID)
	keyPath := os.Getenv(EnvKeyPath)
	if keyID != "" && issuerID != "" && keyPath != "" {
		return &GlobalConfig{Apple: AppleConfig{
			KeyID:    keyID,
			IssuerID: issuerID,
			KeyPath:  keyPath,
		}}, nil
	}

	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg GlobalConfig
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveGlobal writes the global config, creating the config directory and
// its keys/ subdirectory as needed. An existing file is overwritten.
func SaveGlobal(cfg *GlobalConfig) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, "keys"), 0o755); err != nil {
		return err
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.toml"), content, 0o600)
}

// ExpandTilde resolves a leading "~/" against the user's home directory.
// Paths without the prefix are returned unchanged, as is "~" itself when
// the home directory cannot be determined.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
