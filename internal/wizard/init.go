package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/launchpadhq/launchpad/internal/config"
	"github.com/launchpadhq/launchpad/internal/fastlane"
	"github.com/launchpadhq/launchpad/internal/term"
	"github.com/launchpadhq/launchpad/internal/xcode"
)

var (
	ErrAlreadyInitialized    = errors.New(".launchpad.toml already exists. Delete it first to reinitialize")
	ErrNoIOSProject          = errors.New("no iOS project found in current directory")
	ErrNoScheme              = errors.New("could not detect Xcode scheme. Use --scheme to specify")
	ErrFastlaneInstallFailed = errors.New("fastlane installation failed")
)

// fallbackBundleID is offered when the build-settings probe fails.
const fallbackBundleID = "com.example.app"

// Tools are the external probes init depends on, injectable for tests.
type Tools struct {
	FastlaneInstalled func() bool
	InstallFastlane   func(ctx context.Context) error
	ListSchemes       func(dir string) ([]string, error)
	BundleID          func(dir, scheme string) (string, error)
	DetectProjectDir  func(root string) (string, bool)
}

// DefaultTools wires the real fastlane and xcodebuild probes.
func DefaultTools() Tools {
	return Tools{
		FastlaneInstalled: fastlane.IsInstalled,
		InstallFastlane:   fastlane.Install,
		ListSchemes:       xcode.ListSchemes,
		BundleID:          xcode.BundleID,
		DetectProjectDir:  xcode.DetectProjectDir,
	}
}

// InitOptions carry the explicit flag values; empty strings mean detect.
type InitOptions struct {
	Dir      string // repository root; "." from the CLI
	IOSPath  string
	Scheme   string
	BundleID string
}

// InitWorkflow bootstraps a project: probes the toolchain, writes
// .launchpad.toml and its example, and offers a generated Fastfile.
type InitWorkflow struct {
	Out     io.Writer
	Theme   term.Theme
	Decider Decider
	Tools   Tools

	// Spin wraps slow tool invocations with progress UI; nil runs inline.
	Spin func(title string, action func()) error
}

// Run executes the init workflow. It refuses to touch an already
// initialized repository.
func (w *InitWorkflow) Run(ctx context.Context, opts InitOptions) error {
	fmt.Fprintln(w.Out, w.Theme.Title("Launchpad Init"))
	fmt.Fprintln(w.Out)

	if _, err := os.Stat(config.ProjectPath(opts.Dir)); err == nil {
		return ErrAlreadyInitialized
	}

	if err := w.ensureFastlane(ctx); err != nil {
		return err
	}

	iosPath, err := w.resolveIOSPath(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(w.Out, "%s Found iOS project at: %s\n", w.Theme.Success("✓"), iosPath)

	scheme, err := w.resolveScheme(opts, iosPath)
	if err != nil {
		return err
	}

	bundleID, err := w.resolveBundleID(opts, iosPath, scheme)
	if err != nil {
		return err
	}

	gitTag, pushTags, err := w.resolveTagPolicy()
	if err != nil {
		return err
	}

	cfg := &config.ProjectConfig{
		Project: config.ProjectSettings{
			IOSPath:  iosPath,
			Scheme:   scheme,
			BundleID: bundleID,
		},
		Deploy: config.DeploySettings{
			GitTag:         gitTag,
			PushTags:       pushTags,
			CleanArtifacts: true,
		},
	}
	if err := config.SaveProject(opts.Dir, cfg); err != nil {
		return err
	}
	fmt.Fprintf(w.Out, "%s Created %s\n", w.Theme.Success("✓"), config.ProjectFilename)

	examplePath := filepath.Join(opts.Dir, config.ProjectFilename+".example")
	if _, err := os.Stat(examplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(examplePath, []byte(fastlane.ExampleProjectConfig), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(w.Out, "%s Created %s (for team reference)\n",
			w.Theme.Success("✓"), config.ProjectFilename+".example")
	}

	if err := w.ensureFastfile(opts.Dir, iosPath, scheme); err != nil {
		return err
	}

	if err := w.offerGitignore(opts.Dir); err != nil {
		return err
	}

	fmt.Fprintln(w.Out)
	fmt.Fprintln(w.Out, w.Theme.Title("Setup Complete!"))
	fmt.Fprintln(w.Out)
	fmt.Fprintln(w.Out, "  Next steps:")
	fmt.Fprintln(w.Out, "    1. Run 'launchpad doctor' to verify setup")
	fmt.Fprintln(w.Out, "    2. Run 'launchpad deploy' to deploy to TestFlight")
	fmt.Fprintln(w.Out)

	return nil
}

func (w *InitWorkflow) ensureFastlane(ctx context.Context) error {
	if w.Tools.FastlaneInstalled() {
		fmt.Fprintf(w.Out, "%s fastlane found\n", w.Theme.Success("✓"))
		return nil
	}

	fmt.Fprintf(w.Out, "%s fastlane not found\n", w.Theme.Error("✗"))
	install, err := w.Decider.Confirm("Install fastlane?", true)
	if err != nil {
		return err
	}
	if !install {
		return ErrCancelled
	}

	fmt.Fprintf(w.Out, "%s Running: brew install fastlane\n", w.Theme.Muted("→"))

	var installErr error
	run := func() { installErr = w.Tools.InstallFastlane(ctx) }
	if w.Spin != nil {
		if err := w.Spin("Installing fastlane...", run); err != nil {
			return err
		}
	} else {
		run()
	}
	if installErr != nil {
		fmt.Fprintf(w.Out, "%s Failed to install fastlane via brew\n", w.Theme.Error("✗"))
		fmt.Fprintf(w.Out, "%s Try manually: brew install fastlane\n", w.Theme.Muted("→"))
		return ErrFastlaneInstallFailed
	}

	fmt.Fprintf(w.Out, "%s fastlane installed\n", w.Theme.Success("✓"))
	return nil
}

func (w *InitWorkflow) resolveIOSPath(opts InitOptions) (string, error) {
	if opts.IOSPath != "" {
		return opts.IOSPath, nil
	}
	if detected, ok := w.Tools.DetectProjectDir(opts.Dir); ok {
		return detected, nil
	}
	return "", ErrNoIOSProject
}

func (w *InitWorkflow) resolveScheme(opts InitOptions, iosPath string) (string, error) {
	if opts.Scheme != "" {
		return opts.Scheme, nil
	}

	schemes, err := w.Tools.ListSchemes(filepath.Join(opts.Dir, iosPath))
	if err != nil {
		return "", fmt.Errorf("xcode error: %w", err)
	}

	switch len(schemes) {
	case 0:
		return "", ErrNoScheme
	case 1:
		fmt.Fprintf(w.Out, "%s Detected scheme: %s\n", w.Theme.Success("✓"), schemes[0])
		return schemes[0], nil
	}

	fmt.Fprintf(w.Out, "%s Multiple schemes found\n", w.Theme.Muted("→"))
	scheme, err := w.Decider.Select("Select a scheme", schemes)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(w.Out, "%s Using scheme: %s\n", w.Theme.Success("✓"), scheme)
	return scheme, nil
}

func (w *InitWorkflow) resolveBundleID(opts InitOptions, iosPath, scheme string) (string, error) {
	if opts.BundleID != "" {
		return opts.BundleID, nil
	}

	detected, err := w.Tools.BundleID(filepath.Join(opts.Dir, iosPath), scheme)
	if err != nil || detected == "" {
		detected = fallbackBundleID
	}

	bundleID, err := w.Decider.Input("Bundle identifier", detected)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(w.Out, "%s Using bundle ID: %s\n", w.Theme.Success("✓"), bundleID)
	return bundleID, nil
}

func (w *InitWorkflow) resolveTagPolicy() (gitTag, pushTags bool, err error) {
	gitTag, err = w.Decider.Confirm("Create git tags after deploy?", true)
	if err != nil {
		return false, false, err
	}
	if !gitTag {
		return false, false, nil
	}

	pushTags, err = w.Decider.Confirm("Push tags to remote?", true)
	if err != nil {
		return false, false, err
	}
	return gitTag, pushTags, nil
}

func (w *InitWorkflow) ensureFastfile(dir, iosPath, scheme string) error {
	for _, candidate := range fastlane.FastfileCandidates(iosPath) {
		if _, err := os.Stat(filepath.Join(dir, candidate)); err == nil {
			fmt.Fprintf(w.Out, "%s Fastfile found at: %s\n", w.Theme.Success("✓"), candidate)
			return nil
		}
	}

	fmt.Fprintf(w.Out, "%s Fastfile not found in %s/fastlane/\n", w.Theme.Warn("⚠"), iosPath)
	create, err := w.Decider.Confirm("Create Fastfile with required lanes?", true)
	if err != nil {
		return err
	}
	if !create {
		fmt.Fprintf(w.Out, "%s Skipping Fastfile creation. You'll need to create it manually.\n", w.Theme.Warn("⚠"))
		return nil
	}

	content, err := fastlane.GenerateFastfile(scheme)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, iosPath, "fastlane", "Fastfile")
	if err := fastlane.WriteFastfile(path, content); err != nil {
		return err
	}
	fmt.Fprintf(w.Out, "%s Created %s\n", w.Theme.Success("✓"), path)
	return nil
}

// offerGitignore appends the config filename to an existing .gitignore,
// but only with explicit confirmation; the default answer is no, so
// non-interactive runs never touch it.
func (w *InitWorkflow) offerGitignore(dir string) error {
	gitignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignorePath); err != nil {
		return nil
	}

	add, err := w.Decider.Confirm("Add .launchpad.toml to .gitignore?", false)
	if err != nil {
		return err
	}
	if !add {
		return nil
	}

	content, err := os.ReadFile(gitignorePath)
	if err != nil {
		return err
	}
	if strings.Contains(string(content), config.ProjectFilename) {
		return nil
	}

	updated := string(content) + "\n" + config.ProjectFilename + "\n"
	if err := os.WriteFile(gitignorePath, []byte(updated), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(w.Out, "%s Added to .gitignore\n", w.Theme.Success("✓"))
	return nil
}
