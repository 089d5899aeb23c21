package cmd

import (
	"github.com/spf13/cobra"

	"github.com/launchpadhq/launchpad/internal/term"
	"github.com/launchpadhq/launchpad/internal/wizard"
)

func newInitCmd() *cobra.Command {
	var (
		iosPath  string
		scheme   string
		bundleID string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the current project for TestFlight deploys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			var decider wizard.Decider = wizard.PromptDecider{}
			if yes {
				decider = wizard.DefaultsDecider{}
			}

			workflow := &wizard.InitWorkflow{
				Out:     cmd.OutOrStdout(),
				Theme:   term.NewTheme(),
				Decider: decider,
				Tools:   wizard.DefaultTools(),
				Spin:    spin(verbose),
			}
			return workflow.Run(cmd.Context(), wizard.InitOptions{
				Dir:      ".",
				IOSPath:  iosPath,
				Scheme:   scheme,
				BundleID: bundleID,
			})
		},
	}

	cmd.Flags().StringVar(&iosPath, "ios-path", "", "path to the iOS project directory (detected when omitted)")
	cmd.Flags().StringVar(&scheme, "scheme", "", "Xcode scheme to build (detected when omitted)")
	cmd.Flags().StringVar(&bundleID, "bundle-id", "", "app bundle identifier (detected when omitted)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept all defaults without prompting")

	return cmd
}
