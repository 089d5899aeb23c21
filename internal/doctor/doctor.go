// Package doctor verifies the local toolchain and configuration. Checks
// are aggregated rather than short-circuited so one report covers
// everything that needs fixing.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/launchpadhq/launchpad/internal/config"
	"github.com/launchpadhq/launchpad/internal/fastlane"
	"github.com/launchpadhq/launchpad/internal/term"
	"github.com/launchpadhq/launchpad/internal/xcode"
)

// ErrChecksFailed is returned when at least one check failed; the command
// layer maps it to a non-zero exit.
var ErrChecksFailed = errors.New("prerequisites check failed")

// CheckResult is one line of the doctor report.
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// Run collects and prints all checks for the project in dir.
func Run(out io.Writer, theme term.Theme, dir string) error {
	fmt.Fprintln(out, theme.Title("Launchpad Doctor"))
	fmt.Fprintln(out)

	checks := Collect(dir)

	failed := 0
	for _, check := range checks {
		mark := theme.Success("✓")
		if !check.Passed {
			mark = theme.Error("✗")
			failed++
		}
		fmt.Fprintf(out, "%s %s %s\n", mark, theme.Label(check.Name), theme.Muted(check.Message))
	}
	fmt.Fprintln(out)

	if failed > 0 {
		plural := "s"
		if failed == 1 {
			plural = ""
		}
		fmt.Fprintf(out, "%d issue%s found\n", failed, plural)
		return ErrChecksFailed
	}

	fmt.Fprintf(out, "%s All checks passed!\n", theme.Success("✓"))
	return nil
}

// Collect runs every applicable check. Project-level checks are skipped
// entirely when no project config exists in dir.
func Collect(dir string) []CheckResult {
	checks := []CheckResult{
		checkXcode(),
		checkFastlane(),
		checkGlobalConfig(),
	}
	if projectCheck, ok := checkProjectConfig(dir); ok {
		checks = append(checks, projectCheck)
	}
	if fastfileCheck, ok := checkFastfile(dir); ok {
		checks = append(checks, fastfileCheck)
	}
	return checks
}

func checkXcode() CheckResult {
	if version, ok := xcode.Version(); ok {
		return CheckResult{Name: "Xcode", Passed: true, Message: version}
	}
	return CheckResult{
		Name:    "Xcode",
		Passed:  false,
		Message: "Not installed (run: xcode-select --install)",
	}
}

func checkFastlane() CheckResult {
	if fastlane.IsInstalled() {
		return CheckResult{Name: "fastlane", Passed: true, Message: fastlane.Version()}
	}
	return CheckResult{
		Name:    "fastlane",
		Passed:  false,
		Message: "Not installed (run: brew install fastlane)",
	}
}

func checkGlobalConfig() CheckResult {
	name := "Apple API key"

	cfg, err := config.LoadGlobal()
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("Config error: %v", err)}
	}
	if cfg == nil {
		return CheckResult{Name: name, Passed: false, Message: "Not configured (run: launchpad setup)"}
	}

	keyPath := config.ExpandTilde(cfg.Apple.KeyPath)
	if _, err := os.Stat(keyPath); err != nil {
		return CheckResult{Name: name, Passed: false, Message: "Key file not found: " + keyPath}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("Configured (%s)", cfg.Apple.KeyID)}
}

// checkProjectConfig reports ok=false when the check does not apply (no
// .launchpad.toml present).
func checkProjectConfig(dir string) (CheckResult, bool) {
	name := "Project"

	if _, err := os.Stat(config.ProjectPath(dir)); err != nil {
		return CheckResult{}, false
	}

	cfg, err := config.LoadProject(dir)
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("Config error: %v", err)}, true
	}
	if cfg == nil {
		return CheckResult{}, false
	}

	if _, err := os.Stat(filepath.Join(dir, cfg.Project.IOSPath)); err != nil {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: "iOS path not found: " + cfg.Project.IOSPath,
		}, true
	}
	return CheckResult{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("%s (scheme: %s)", cfg.Project.IOSPath, cfg.Project.Scheme),
	}, true
}

func checkFastfile(dir string) (CheckResult, bool) {
	cfg, err := config.LoadProject(dir)
	if err != nil || cfg == nil {
		return CheckResult{}, false
	}

	for _, candidate := range fastlane.FastfileCandidates(cfg.Project.IOSPath) {
		if _, err := os.Stat(filepath.Join(dir, candidate)); err == nil {
			return CheckResult{Name: "Fastfile", Passed: true, Message: candidate}, true
		}
	}
	return CheckResult{
		Name:    "Fastfile",
		Passed:  false,
		Message: "Not found (run: launchpad init)",
	}, true
}
