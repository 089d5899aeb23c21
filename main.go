package main

import (
	"fmt"
	"os"

	"github.com/launchpadhq/launchpad/cmd"
	"github.com/launchpadhq/launchpad/internal/term"
)

func main() {
	if err := cmd.Execute(); err != nil {
		theme := term.NewTheme()
		fmt.Fprintln(os.Stderr, theme.Error("✗ "+err.Error()))
		os.Exit(1)
	}
}
