package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/launchpadhq/launchpad/internal/config"
	"github.com/launchpadhq/launchpad/internal/deploy"
	"github.com/launchpadhq/launchpad/internal/fastlane"
	"github.com/launchpadhq/launchpad/internal/gitx"
	"github.com/launchpadhq/launchpad/internal/term"
)

func newDeployCmd() *cobra.Command {
	var (
		patch        bool
		minor        bool
		noTag        bool
		skipGitCheck bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Build and upload the app to TestFlight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			bump := ""
			switch {
			case patch:
				bump = "patch"
			case minor:
				bump = "minor"
			}

			orchestrator := &deploy.Orchestrator{
				Dir:    ".",
				Out:    cmd.OutOrStdout(),
				Theme:  term.NewTheme(),
				Logger: slog.Default(),
				Git:    &gitx.Git{Dir: "."},
				Spin:   spin(verbose),
			}
			if verbose {
				orchestrator.NewUploader = func(g *config.GlobalConfig, p *config.ProjectConfig) deploy.Uploader {
					return &fastlane.Runner{
						KeyID:    g.Apple.KeyID,
						IssuerID: g.Apple.IssuerID,
						KeyPath:  config.ExpandTilde(g.Apple.KeyPath),
						IOSPath:  p.Project.IOSPath,
						Stream:   os.Stdout,
					}
				}
			}

			_, err := orchestrator.Run(cmd.Context(), deploy.Options{
				Bump:         bump,
				NoTag:        noTag,
				SkipGitCheck: skipGitCheck,
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&patch, "patch", false, "bump the patch version and reset the build number")
	cmd.Flags().BoolVar(&minor, "minor", false, "bump the minor version and reset the build number")
	cmd.Flags().BoolVar(&noTag, "no-tag", false, "skip git tagging for this deploy")
	cmd.Flags().BoolVar(&skipGitCheck, "skip-git-check", false, "deploy even with uncommitted changes")
	cmd.MarkFlagsMutuallyExclusive("patch", "minor")

	return cmd
}
