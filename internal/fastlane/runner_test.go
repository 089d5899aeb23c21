package fastlane

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestExtractVersionWithBuildNumber(t *testing.T) {
	v, ok := extractVersion("Successfully uploaded build 2.1.0 (45) to TestFlight")
	if !ok {
		t.Fatal("expected a version match")
	}
	if v != "2.1.0 (45)" {
		t.Errorf("expected %q, got %q", "2.1.0 (45)", v)
	}
}

func TestExtractVersionPlain(t *testing.T) {
	v, ok := extractVersion("Version: 1.0.0")
	if !ok || v != "1.0.0" {
		t.Fatalf("expected 1.0.0, got %q (ok=%v)", v, ok)
	}
}

func TestExtractVersionNoMatch(t *testing.T) {
	if v, ok := extractVersion("Uploading to TestFlight..."); ok {
		t.Fatalf("expected no match, got %q", v)
	}
}

func TestScanVersionLineIgnoresUnrelatedLines(t *testing.T) {
	// The digit pattern alone is not enough; the line must look like a
	// version or upload report.
	if v, ok := scanVersionLine("Using cocoapods 1.15.2 for dependency resolution"); ok {
		t.Fatalf("expected no match, got %q", v)
	}
	if _, ok := scanVersionLine("Version: 1.2.1 (9)"); !ok {
		t.Fatal("expected a match")
	}
}

func TestScanVersionLineLastWriteWins(t *testing.T) {
	lines := []string{
		"Version: 1.0.0",
		"some unrelated chatter",
		"Successfully uploaded build 1.0.1 (7) to TestFlight",
	}

	last := ""
	for _, line := range lines {
		if v, ok := scanVersionLine(line); ok {
			last = v
		}
	}
	if last != "1.0.1 (7)" {
		t.Errorf("expected 1.0.1 (7), got %q", last)
	}
}

func TestTranscriptTail(t *testing.T) {
	var tr transcript
	for _, line := range []string{"a", "b", "c", "d"} {
		tr.append(line)
	}

	tail := tr.tail(2)
	if len(tail) != 2 || tail[0] != "c" || tail[1] != "d" {
		t.Fatalf("expected [c d], got %v", tail)
	}
	if all := tr.tail(10); len(all) != 4 {
		t.Fatalf("expected 4 lines, got %v", all)
	}
}

func TestLaneForBump(t *testing.T) {
	cases := map[string]Lane{
		"patch": LaneBetaPatch,
		"minor": LaneBetaMinor,
		"":      LaneBeta,
		"other": LaneBeta,
	}
	for bump, want := range cases {
		if got := LaneForBump(bump); got != want {
			t.Errorf("LaneForBump(%q) = %q, want %q", bump, got, want)
		}
	}
}

// writeFakeLane writes an executable shell script standing in for the
// fastlane binary.
func writeFakeLane(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake lane scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-fastlane")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDeployStreamsBothPipesAndScrapesVersion(t *testing.T) {
	// Interleaved heavy stderr with the version on stdout; a sequential
	// reader could deadlock here once a pipe buffer fills.
	script := `
i=0
while [ $i -lt 2000 ]; do
  echo "stderr noise line $i" >&2
  i=$((i+1))
done
echo "Building MyApp..."
echo "Version: 1.2.1 (9)"
echo "Successfully uploaded build 1.2.2 (10) to TestFlight"
exit 0
`
	r := &Runner{IOSPath: t.TempDir(), bin: writeFakeLane(t, script)}

	version, err := r.Deploy(context.Background(), LaneBeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "1.2.2 (10)" {
		t.Errorf("expected 1.2.2 (10), got %q", version)
	}
}

func TestDeployNoVersionIsUnknown(t *testing.T) {
	r := &Runner{IOSPath: t.TempDir(), bin: writeFakeLane(t, `echo "done"`)}

	version, err := r.Deploy(context.Background(), LaneBeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != UnknownVersion {
		t.Errorf("expected %q, got %q", UnknownVersion, version)
	}
}

func TestDeployFailureCarriesTrailingOutput(t *testing.T) {
	// Fewer than 10 lines total, so the error context must contain all of
	// them whatever order the two drains interleave in.
	script := `
echo "Building MyApp..."
echo "error: code signing failed" >&2
exit 1
`
	r := &Runner{IOSPath: t.TempDir(), bin: writeFakeLane(t, script)}

	_, err := r.Deploy(context.Background(), LaneBeta)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "code signing failed") {
		t.Errorf("expected stderr context in error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "Building MyApp...") {
		t.Errorf("expected stdout context in error, got: %v", err)
	}
}

func TestDeployMirrorsToStream(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{
		IOSPath: t.TempDir(),
		Stream:  &buf,
		bin:     writeFakeLane(t, `echo "Version: 3.0.0"`),
	}

	if _, err := r.Deploy(context.Background(), LaneBeta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Version: 3.0.0") {
		t.Errorf("expected mirrored output, got %q", buf.String())
	}
}
