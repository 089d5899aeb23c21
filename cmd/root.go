// Package cmd defines the launchpad CLI surface.
package cmd

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "launchpad",
		Short:         "Deploy iOS apps to TestFlight with a single command",
		Long:          "Launchpad wraps fastlane, xcodebuild and git into one deploy workflow:\nconfigure credentials once, initialize a project, ship with 'launchpad deploy'.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "stream subprocess output and debug logs")

	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// spin runs action behind a spinner, or inline when verbose output would
// fight the spinner for the terminal.
func spin(verbose bool) func(title string, action func()) error {
	if verbose {
		return nil
	}
	return func(title string, action func()) error {
		return spinner.New().Title(title).Action(action).Run()
	}
}
