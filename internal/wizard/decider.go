// Package wizard holds the interactive workflows: first-time credential
// setup and per-project initialization. Every user decision goes through
// the Decider so interactive and non-interactive runs share one call site
// per decision.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrCancelled is returned when the user aborts a prompt or declines a
// required confirmation.
var ErrCancelled = errors.New("cancelled")

// Decider answers the workflow's questions. Implementations either prompt
// the user or return the provided defaults.
type Decider interface {
	// Confirm asks a yes/no question.
	Confirm(title string, def bool) (bool, error)
	// Input asks for a line of text, offering def as the initial value.
	Input(title, def string) (string, error)
	// Select asks the user to pick one of options (never empty).
	Select(title string, options []string) (string, error)
}

// PromptDecider asks via huh forms on the terminal.
type PromptDecider struct{}

func (PromptDecider) Confirm(title string, def bool) (bool, error) {
	value := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Inline(true).
			Value(&value),
	)).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return false, mapAborted(err)
	}
	return value, nil
}

func (PromptDecider) Input(title, def string) (string, error) {
	value := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Value(&value).
			Validate(requiredField(title)),
	)).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return "", mapAborted(err)
	}
	return strings.TrimSpace(value), nil
}

func (PromptDecider) Select(title string, options []string) (string, error) {
	opts := make([]huh.Option[string], len(options))
	for i, option := range options {
		opts[i] = huh.NewOption(option, option)
	}

	value := options[0]
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(opts...).
			Value(&value),
	)).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return "", mapAborted(err)
	}
	return value, nil
}

// DefaultsDecider answers every question with its default: confirms keep
// their default answer, inputs return the offered value, selects pick the
// first option. Used for --yes runs.
type DefaultsDecider struct{}

func (DefaultsDecider) Confirm(_ string, def bool) (bool, error) {
	return def, nil
}

func (DefaultsDecider) Input(_, def string) (string, error) {
	return def, nil
}

func (DefaultsDecider) Select(_ string, options []string) (string, error) {
	return options[0], nil
}

func mapAborted(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// requiredField rejects blank values.
func requiredField(label string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}
