package cmd

import (
	"github.com/spf13/cobra"

	"github.com/launchpadhq/launchpad/internal/term"
	"github.com/launchpadhq/launchpad/internal/wizard"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Configure Apple App Store Connect API credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workflow := &wizard.SetupWorkflow{
				Out:     cmd.OutOrStdout(),
				Theme:   term.NewTheme(),
				Decider: wizard.PromptDecider{},
			}
			return workflow.Run(".")
		},
	}
}
