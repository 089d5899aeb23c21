package xcode

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSchemes(t *testing.T) {
	out := "Information about workspace \"MyApp\":\n" +
		"    Schemes:\n" +
		"        A\n" +
		"        B\n" +
		"\n" +
		"    Build Configurations:\n" +
		"        Debug\n"

	schemes := parseSchemes(out)
	if len(schemes) != 2 || schemes[0] != "A" || schemes[1] != "B" {
		t.Fatalf("expected [A B], got %v", schemes)
	}
}

func TestParseSchemesStopsAtHeaderLine(t *testing.T) {
	// No blank line between the schemes and the next section; the
	// ":"-suffixed header must still terminate the block.
	out := "Schemes:\n    OnlyOne\nTargets:\n    App\n"

	schemes := parseSchemes(out)
	if len(schemes) != 1 || schemes[0] != "OnlyOne" {
		t.Fatalf("expected [OnlyOne], got %v", schemes)
	}
}

func TestParseSchemesNoHeader(t *testing.T) {
	if schemes := parseSchemes("Targets:\n    App\n"); len(schemes) != 0 {
		t.Fatalf("expected no schemes, got %v", schemes)
	}
}

func TestParseBundleID(t *testing.T) {
	out := "    OTHER_SETTING = 1\n" +
		"    PRODUCT_BUNDLE_IDENTIFIER = com.example.myapp\n" +
		"    PRODUCT_BUNDLE_IDENTIFIER = com.example.myapp.tests\n"

	id, ok := parseBundleID(out)
	if !ok {
		t.Fatal("expected a bundle identifier")
	}
	// First occurrence wins.
	if id != "com.example.myapp" {
		t.Errorf("expected com.example.myapp, got %q", id)
	}
}

func TestParseBundleIDMissing(t *testing.T) {
	if _, ok := parseBundleID("    SWIFT_VERSION = 5.0\n"); ok {
		t.Fatal("expected no bundle identifier")
	}
}

func TestFindWorkspaceSkipsProjectBundle(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"project.xcworkspace", "MyApp.xcworkspace"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	ws, ok := FindWorkspace(dir)
	if !ok {
		t.Fatal("expected a workspace")
	}
	if filepath.Base(ws) != "MyApp.xcworkspace" {
		t.Errorf("expected MyApp.xcworkspace, got %q", ws)
	}
}

func TestFindProject(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "MyApp.xcodeproj"), 0o755); err != nil {
		t.Fatal(err)
	}

	proj, ok := FindProject(dir)
	if !ok || filepath.Base(proj) != "MyApp.xcodeproj" {
		t.Fatalf("expected MyApp.xcodeproj, got %q (ok=%v)", proj, ok)
	}
}

func TestContainerArgsNoProject(t *testing.T) {
	if _, err := containerArgs(t.TempDir()); err == nil {
		t.Fatal("expected an error for an empty directory")
	}
}

func TestDetectProjectDirPrefersIOS(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{
		filepath.Join("ios", "MyApp.xcworkspace"),
		filepath.Join("App", "MyApp.xcodeproj"),
	} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	dir, ok := DetectProjectDir(root)
	if !ok || dir != "ios" {
		t.Fatalf("expected ios, got %q (ok=%v)", dir, ok)
	}
}

func TestDetectProjectDirFallsBackToApp(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "App", "MyApp.xcodeproj"), 0o755); err != nil {
		t.Fatal(err)
	}

	dir, ok := DetectProjectDir(root)
	if !ok || dir != "App" {
		t.Fatalf("expected App, got %q (ok=%v)", dir, ok)
	}
}

func TestDetectProjectDirNoneFound(t *testing.T) {
	if dir, ok := DetectProjectDir(t.TempDir()); ok {
		t.Fatalf("expected no project dir, got %q", dir)
	}
}
