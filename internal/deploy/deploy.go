// Package deploy orchestrates a TestFlight deployment: validate configs
// and the working tree, run the fastlane lane, then tag best-effort.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/launchpadhq/launchpad/internal/config"
	"github.com/launchpadhq/launchpad/internal/fastlane"
	"github.com/launchpadhq/launchpad/internal/term"
)

var (
	ErrNoGlobalConfig  = errors.New("global config not found. Run 'launchpad setup' first")
	ErrNoProjectConfig = errors.New("project config not found. Run 'launchpad init' first")
	ErrDirtyWorkingDir = errors.New("git working directory is not clean. Commit or stash changes first")
)

// Options select the lane and relax pre-flight checks.
type Options struct {
	Bump         string // "", "patch", or "minor"
	NoTag        bool
	SkipGitCheck bool
}

// Outcome is the transient result of one deployment.
type Outcome struct {
	Version string
}

// GitClient is the slice of git behavior deploy needs.
type GitClient interface {
	IsClean() (bool, error)
	CreateTag(tag, message string) error
	PushTags() error
}

// Uploader runs a deploy lane and reports the uploaded version.
type Uploader interface {
	Deploy(ctx context.Context, lane fastlane.Lane) (string, error)
}

// Orchestrator wires the deploy workflow. Git and NewUploader are
// injection points; leave NewUploader nil for the real fastlane runner.
type Orchestrator struct {
	Dir    string // project directory holding .launchpad.toml
	Out    io.Writer
	Theme  term.Theme
	Logger *slog.Logger
	Git    GitClient

	// NewUploader builds the uploader once both configs are validated.
	NewUploader func(g *config.GlobalConfig, p *config.ProjectConfig) Uploader

	// Spin wraps the long-running upload with progress UI; nil runs the
	// action inline.
	Spin func(title string, action func()) error
}

// Run executes the deployment. Validation happens before any build
// subprocess is spawned; tagging failures degrade to warnings.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (Outcome, error) {
	fmt.Fprintln(o.Out, o.Theme.Title("Launchpad Deploy"))
	fmt.Fprintln(o.Out)

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return Outcome{}, fmt.Errorf("config error: %w", err)
	}
	if globalCfg == nil {
		return Outcome{}, ErrNoGlobalConfig
	}

	projectCfg, err := config.LoadProject(o.Dir)
	if err != nil {
		return Outcome{}, fmt.Errorf("config error: %w", err)
	}
	if projectCfg == nil {
		return Outcome{}, ErrNoProjectConfig
	}

	keyPath := config.ExpandTilde(globalCfg.Apple.KeyPath)
	if _, err := os.Stat(keyPath); err != nil {
		return Outcome{}, fmt.Errorf("Apple API key not found at: %s", keyPath)
	}

	if !opts.SkipGitCheck {
		fmt.Fprintf(o.Out, "%s Checking git status...\n", o.Theme.Muted("→"))
		clean, err := o.Git.IsClean()
		if err != nil {
			return Outcome{}, err
		}
		if !clean {
			return Outcome{}, ErrDirtyWorkingDir
		}
		fmt.Fprintf(o.Out, "%s Working directory clean\n", o.Theme.Success("✓"))
	}

	lane := fastlane.LaneForBump(opts.Bump)
	fmt.Fprintf(o.Out, "%s Deploying with %s...\n", o.Theme.Muted("→"), bumpDescription(opts.Bump))

	uploader := o.buildUploader(globalCfg, projectCfg)
	o.logger().Debug("running fastlane lane",
		"lane", string(lane),
		"ios_path", projectCfg.Project.IOSPath,
		"scheme", projectCfg.Project.Scheme)

	var (
		version   string
		deployErr error
	)
	run := func() { version, deployErr = uploader.Deploy(ctx, lane) }
	if o.Spin != nil {
		if err := o.Spin("Building and uploading to TestFlight...", run); err != nil {
			return Outcome{}, err
		}
	} else {
		run()
	}
	if deployErr != nil {
		return Outcome{}, deployErr
	}

	fmt.Fprintf(o.Out, "%s Successfully deployed version %s\n", o.Theme.Success("✓"), version)

	if !opts.NoTag && projectCfg.Deploy.GitTag {
		o.tag(version, projectCfg.Deploy.PushTags)
	}

	fmt.Fprintln(o.Out)
	fmt.Fprintln(o.Out, o.Theme.Title("Deploy Complete!"))
	fmt.Fprintln(o.Out)
	fmt.Fprintf(o.Out, "  Version: %s\n", version)
	fmt.Fprintln(o.Out, "  TestFlight: Processing (usually 10-30 minutes)")
	fmt.Fprintln(o.Out)

	return Outcome{Version: version}, nil
}

// tag creates and optionally pushes the release tag. Both steps are
// best-effort; a deploy that uploaded successfully never fails here.
func (o *Orchestrator) tag(version string, push bool) {
	tag := "v" + version
	fmt.Fprintf(o.Out, "%s Creating git tag %s...\n", o.Theme.Muted("→"), tag)

	if err := o.Git.CreateTag(tag, "Release "+tag); err != nil {
		fmt.Fprintf(o.Out, "%s Failed to create tag: %v\n", o.Theme.Warn("⚠"), err)
		o.logger().Warn("tag creation failed", "tag", tag, "error", err)
		return
	}
	fmt.Fprintf(o.Out, "%s Created tag %s\n", o.Theme.Success("✓"), tag)

	if !push {
		return
	}
	if err := o.Git.PushTags(); err != nil {
		fmt.Fprintf(o.Out, "%s Failed to push tags: %v\n", o.Theme.Warn("⚠"), err)
		o.logger().Warn("tag push failed", "tag", tag, "error", err)
		return
	}
	fmt.Fprintf(o.Out, "%s Pushed tags to remote\n", o.Theme.Success("✓"))
}

func (o *Orchestrator) buildUploader(g *config.GlobalConfig, p *config.ProjectConfig) Uploader {
	if o.NewUploader != nil {
		return o.NewUploader(g, p)
	}
	return &fastlane.Runner{
		KeyID:    g.Apple.KeyID,
		IssuerID: g.Apple.IssuerID,
		KeyPath:  config.ExpandTilde(g.Apple.KeyPath),
		IOSPath:  p.Project.IOSPath,
	}
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func bumpDescription(bump string) string {
	switch bump {
	case "patch":
		return "patch version bump"
	case "minor":
		return "minor version bump"
	default:
		return "build number increment"
	}
}
