package wizard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/launchpadhq/launchpad/internal/config"
	"github.com/launchpadhq/launchpad/internal/doctor"
	"github.com/launchpadhq/launchpad/internal/term"
)

// SetupWorkflow configures the machine-wide Apple credentials. Setup is
// always interactive; there is no --yes variant.
type SetupWorkflow struct {
	Out     io.Writer
	Theme   term.Theme
	Decider Decider

	// RunDoctor is invoked after saving; defaults to doctor.Run. Check
	// failures are downgraded to a warning here.
	RunDoctor func(out io.Writer, theme term.Theme, dir string) error
}

// Run collects the App Store Connect credentials, copies the key file
// into the config directory, and persists the global config.
func (w *SetupWorkflow) Run(dir string) error {
	fmt.Fprintln(w.Out, w.Theme.Title("Launchpad Setup"))
	fmt.Fprintln(w.Out)
	fmt.Fprintln(w.Out, "This will configure your Apple App Store Connect API credentials.")
	fmt.Fprintln(w.Out, "You'll need an API key from: https://appstoreconnect.apple.com/access/api")
	fmt.Fprintln(w.Out)

	existing, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if existing != nil {
		overwrite, err := w.Decider.Confirm("Existing config found. Overwrite?", false)
		if err != nil {
			return err
		}
		if !overwrite {
			return ErrCancelled
		}
	}

	keyID, err := w.Decider.Input("API Key ID", "")
	if err != nil {
		return err
	}
	issuerID, err := w.Decider.Input("Issuer ID", "")
	if err != nil {
		return err
	}
	keyPath, err := w.Decider.Input("Path to .p8 key file", "")
	if err != nil {
		return err
	}

	expandedPath := config.ExpandTilde(keyPath)
	if _, err := os.Stat(expandedPath); err != nil {
		fmt.Fprintf(w.Out, "%s Key file not found at %s\n", w.Theme.Warn("⚠"), expandedPath)
		proceed, err := w.Decider.Confirm("Continue anyway?", false)
		if err != nil {
			return err
		}
		if !proceed {
			return ErrCancelled
		}
	}

	keysDir, err := config.KeysDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(keysDir, 0o755); err != nil {
		return err
	}

	// Copy the key next to the config so the original download can be
	// deleted; fall back to the entered path when the source is missing.
	finalKeyPath := keyPath
	destKeyPath := filepath.Join(keysDir, fmt.Sprintf("AuthKey_%s.p8", keyID))
	if _, err := os.Stat(expandedPath); err == nil {
		if err := copyFile(expandedPath, destKeyPath); err != nil {
			return fmt.Errorf("could not copy key file: %w", err)
		}
		finalKeyPath = destKeyPath
		fmt.Fprintf(w.Out, "%s Copied key to %s\n", w.Theme.Success("✓"), destKeyPath)
	}

	cfg := &config.GlobalConfig{Apple: config.AppleConfig{
		KeyID:    keyID,
		IssuerID: issuerID,
		KeyPath:  finalKeyPath,
	}}
	if err := config.SaveGlobal(cfg); err != nil {
		return fmt.Errorf("could not save config: %w", err)
	}

	fmt.Fprintf(w.Out, "%s Configuration saved\n", w.Theme.Success("✓"))
	fmt.Fprintln(w.Out)

	fmt.Fprintf(w.Out, "%s Running diagnostics...\n", w.Theme.Muted("→"))
	fmt.Fprintln(w.Out)

	runDoctor := w.RunDoctor
	if runDoctor == nil {
		runDoctor = doctor.Run
	}
	if err := runDoctor(w.Out, w.Theme, dir); err != nil {
		fmt.Fprintf(w.Out, "%s Some checks failed: %v\n", w.Theme.Warn("⚠"), err)
	}

	fmt.Fprintln(w.Out)
	fmt.Fprintln(w.Out, w.Theme.Title("Setup Complete!"))
	fmt.Fprintln(w.Out)
	fmt.Fprintln(w.Out, "  Next steps:")
	fmt.Fprintln(w.Out, "    1. cd into your iOS project")
	fmt.Fprintln(w.Out, "    2. Run 'launchpad init'")
	fmt.Fprintln(w.Out, "    3. Run 'launchpad deploy'")
	fmt.Fprintln(w.Out)

	return nil
}

func copyFile(src, dst string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, content, 0o600)
}
