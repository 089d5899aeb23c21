// Package gitx wraps the git operations deploy relies on: the pre-flight
// cleanliness check and post-deploy tagging.
package gitx

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Git runs git commands in Dir. An empty Dir uses the process working
// directory.
type Git struct {
	Dir string
}

func (g Git) run(args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Dir
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %s", args[0], exitDetail(err))
	}
	return out, nil
}

// IsClean reports whether `git status --porcelain` produces no output.
// Untracked files count as dirty.
func (g Git) IsClean() (bool, error) {
	out, err := g.run("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return len(out) == 0, nil
}

// CreateTag creates an annotated tag.
func (g Git) CreateTag(tag, message string) error {
	_, err := g.run("tag", "-a", tag, "-m", message)
	return err
}

// PushTags pushes all tags to the default remote.
func (g Git) PushTags() error {
	_, err := g.run("push", "--tags")
	return err
}

func exitDetail(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return err.Error()
}
