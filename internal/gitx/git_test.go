package gitx

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initRepo creates a throwaway git repository with one commit.
func initRepo(t *testing.T) Git {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	g := Git{Dir: dir}
	for _, args := range [][]string{
		{"init"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
	} {
		if _, err := g.run(args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := g.run("add", "."); err != nil {
		t.Fatal(err)
	}
	if _, err := g.run("commit", "-m", "initial"); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestIsCleanOnFreshCommit(t *testing.T) {
	g := initRepo(t)

	clean, err := g.IsClean()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !clean {
		t.Error("expected a clean tree after commit")
	}
}

func TestIsCleanCountsUntrackedFiles(t *testing.T) {
	g := initRepo(t)
	if err := os.WriteFile(filepath.Join(g.Dir, "scratch.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	clean, err := g.IsClean()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clean {
		t.Error("expected untracked files to count as dirty")
	}
}

func TestCreateTag(t *testing.T) {
	g := initRepo(t)

	if err := g.CreateTag("v1.0.0", "Release v1.0.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := g.run("tag", "--list")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "v1.0.0\n" {
		t.Errorf("expected tag v1.0.0, got %q", out)
	}
}

func TestCreateTagDuplicateFails(t *testing.T) {
	g := initRepo(t)
	if err := g.CreateTag("v1.0.0", "Release v1.0.0"); err != nil {
		t.Fatal(err)
	}

	if err := g.CreateTag("v1.0.0", "Release v1.0.0"); err == nil {
		t.Error("expected duplicate tag creation to fail")
	}
}
