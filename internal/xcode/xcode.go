// Package xcode probes locally installed Xcode toolchains by invoking
// xcodebuild and scraping its line-oriented output. Every failure here is
// recoverable; callers fall back to defaults or prompt the user.
package xcode

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoProject is returned when a directory contains neither an
// .xcworkspace nor an .xcodeproj entry.
var ErrNoProject = errors.New("no Xcode project found")

// IsInstalled reports whether the Xcode command line tools are active.
func IsInstalled() bool {
	return exec.Command("xcode-select", "-p").Run() == nil
}

// Version returns the first line of `xcodebuild -version`, e.g.
// "Xcode 16.2", or false when xcodebuild is unavailable.
func Version() (string, bool) {
	out, err := exec.Command("xcodebuild", "-version").Output()
	if err != nil {
		return "", false
	}
	line, _, _ := strings.Cut(string(out), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return line, true
}

// FindWorkspace returns the first .xcworkspace entry in dir, skipping the
// project.xcworkspace bundles nested inside .xcodeproj directories.
func FindWorkspace(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".xcworkspace") && !strings.HasPrefix(name, "project.") {
			return filepath.Join(dir, name), true
		}
	}
	return "", false
}

// FindProject returns the first .xcodeproj entry in dir.
func FindProject(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".xcodeproj") {
			return filepath.Join(dir, entry.Name()), true
		}
	}
	return "", false
}

// containerArgs picks the -workspace/-project flag pair for dir. The
// workspace wins when both exist, matching xcodebuild's own preference.
func containerArgs(dir string) ([]string, error) {
	if ws, ok := FindWorkspace(dir); ok {
		return []string{"-workspace", ws}, nil
	}
	if proj, ok := FindProject(dir); ok {
		return []string{"-project", proj}, nil
	}
	return nil, fmt.Errorf("%w at: %s", ErrNoProject, dir)
}

// ListSchemes runs `xcodebuild -list` against the workspace or project in
// dir and returns the scheme names it reports.
func ListSchemes(dir string) ([]string, error) {
	container, err := containerArgs(dir)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("xcodebuild", append([]string{"-list"}, container...)...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("xcodebuild -list failed: %s", exitDetail(err))
	}
	return parseSchemes(string(out)), nil
}

// parseSchemes extracts scheme names from `xcodebuild -list` output: the
// lines following the "Schemes:" header, up to the first blank line or the
// next ":"-suffixed header.
func parseSchemes(out string) []string {
	var schemes []string
	inSchemes := false

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "Schemes:" {
			inSchemes = true
			continue
		}
		if !inSchemes {
			continue
		}
		if trimmed == "" || strings.HasSuffix(trimmed, ":") {
			break
		}
		schemes = append(schemes, trimmed)
	}

	return schemes
}

// BundleID queries build settings for the scheme and returns the
// PRODUCT_BUNDLE_IDENTIFIER value.
func BundleID(dir, scheme string) (string, error) {
	container, err := containerArgs(dir)
	if err != nil {
		return "", err
	}

	args := append([]string{"-showBuildSettings", "-scheme", scheme}, container...)
	out, err := exec.Command("xcodebuild", args...).Output()
	if err != nil {
		return "", fmt.Errorf("xcodebuild -showBuildSettings failed: %s", exitDetail(err))
	}

	if id, ok := parseBundleID(string(out)); ok {
		return id, nil
	}
	return "", errors.New("could not find bundle identifier in build settings")
}

func parseBundleID(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "PRODUCT_BUNDLE_IDENTIFIER") {
			continue
		}
		if _, value, ok := strings.Cut(line, "="); ok {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// DetectProjectDir scans a fixed candidate list for a directory directly
// containing an Xcode workspace or project. First match wins.
func DetectProjectDir(root string) (string, bool) {
	for _, candidate := range []string{"ios", ".", "App", "app"} {
		dir := filepath.Join(root, candidate)
		if _, ok := FindWorkspace(dir); ok {
			return candidate, true
		}
		if _, ok := FindProject(dir); ok {
			return candidate, true
		}
	}
	return "", false
}

// exitDetail surfaces captured stderr from an *exec.ExitError, falling
// back to the plain error string.
func exitDetail(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return err.Error()
}
