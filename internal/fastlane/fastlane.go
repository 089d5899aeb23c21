// Package fastlane wraps the fastlane CLI: presence/version probing, brew
// installation, the deploy lane invocation with live output draining, and
// the generated Fastfile template.
package fastlane

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// IsInstalled reports whether fastlane resolves on the search path.
func IsInstalled() bool {
	_, err := exec.LookPath("fastlane")
	return err == nil
}

// Version returns the installed fastlane version, or "installed" when the
// binary exists but the version line cannot be parsed.
func Version() string {
	out, err := exec.Command("fastlane", "--version").Output()
	if err != nil {
		return "installed"
	}
	// fastlane prints plugin noise before a final "fastlane X.Y.Z" line.
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "fastlane") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			return fields[len(fields)-1]
		}
	}
	return "installed"
}

// Install installs fastlane via Homebrew.
func Install(ctx context.Context) error {
	if err := exec.CommandContext(ctx, "brew", "install", "fastlane").Run(); err != nil {
		return fmt.Errorf("brew install fastlane failed: %w", err)
	}
	return nil
}

// FastfileCandidates returns the relative paths probed for an existing
// Fastfile, most specific first.
func FastfileCandidates(iosPath string) []string {
	return []string{
		iosPath + "/fastlane/Fastfile",
		iosPath + "/Fastfile",
		"fastlane/Fastfile",
		"Fastfile",
	}
}
