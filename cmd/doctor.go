package cmd

import (
	"github.com/spf13/cobra"

	"github.com/launchpadhq/launchpad/internal/doctor"
	"github.com/launchpadhq/launchpad/internal/term"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the deploy toolchain is ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return doctor.Run(cmd.OutOrStdout(), term.NewTheme(), ".")
		},
	}
}
