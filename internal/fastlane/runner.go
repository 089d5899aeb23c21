package fastlane

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
	"sync"
)

// Lane names the fastlane recipes a project's Fastfile is expected to
// define. Selection depends only on the requested version bump.
type Lane string

const (
	LaneBeta      Lane = "beta"
	LaneBetaPatch Lane = "beta_patch"
	LaneBetaMinor Lane = "beta_minor"
)

// UnknownVersion is reported when a lane succeeds but no version string
// was ever seen in its output.
const UnknownVersion = "unknown"

// Runner invokes a deploy lane in the project's iOS directory, feeding the
// App Store Connect credentials to fastlane through its environment.
type Runner struct {
	KeyID    string
	IssuerID string
	KeyPath  string // already tilde-expanded
	IOSPath  string

	// Stream receives every output line as it arrives, for live progress.
	// Nil means collect-only.
	Stream io.Writer

	// bin overrides the fastlane executable in tests.
	bin string
}

// versionPattern matches "1.2.3" optionally followed by "(45)". The last
// match in the output wins; there is deliberately no check that versions
// only increase, matching long-standing behavior.
var versionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+)(?:\s*\((\d+)\))?`)

// transcript is the one value shared between the two drain goroutines.
type transcript struct {
	mu    sync.Mutex
	lines []string
}

func (t *transcript) append(line string) {
	t.mu.Lock()
	t.lines = append(t.lines, line)
	t.mu.Unlock()
}

// tail returns the last n lines, oldest first.
func (t *transcript) tail(n int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.lines) <= n {
		return append([]string(nil), t.lines...)
	}
	return append([]string(nil), t.lines[len(t.lines)-n:]...)
}

// Deploy runs the lane and returns the last version string scraped from
// its stdout, or UnknownVersion when the lane succeeded without printing
// one. On a non-zero exit the error carries the trailing transcript lines
// for context.
//
// Stdout and stderr are drained by two goroutines so a child writing
// heavily to one pipe can never deadlock against an unread other; both
// drains are joined before the exit status is reaped.
func (r *Runner) Deploy(ctx context.Context, lane Lane) (string, error) {
	bin := r.bin
	if bin == "" {
		bin = "fastlane"
	}

	cmd := exec.CommandContext(ctx, bin, string(lane))
	cmd.Dir = r.IOSPath
	cmd.Env = append(cmd.Environ(),
		"APP_STORE_CONNECT_API_KEY_KEY_ID="+r.KeyID,
		"APP_STORE_CONNECT_API_KEY_ISSUER_ID="+r.IssuerID,
		"APP_STORE_CONNECT_API_KEY_KEY_FILEPATH="+r.KeyPath,
		"FASTLANE_XCODEBUILD_SETTINGS_TIMEOUT=180",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", err
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("could not start fastlane: %w", err)
	}

	var (
		out         transcript
		versionMu   sync.Mutex
		lastVersion string
		wg          sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		r.drain(stdout, &out, func(line string) {
			if v, ok := scanVersionLine(line); ok {
				versionMu.Lock()
				lastVersion = v
				versionMu.Unlock()
			}
		})
	}()
	go func() {
		defer wg.Done()
		r.drain(stderr, &out, nil)
	}()

	wg.Wait()
	err = cmd.Wait()

	if err != nil {
		return "", fmt.Errorf("fastlane %s failed:\n%s", lane, strings.Join(out.tail(10), "\n"))
	}

	if lastVersion == "" {
		return UnknownVersion, nil
	}
	return lastVersion, nil
}

// drain reads rd line by line into the transcript, mirroring to Stream and
// notifying scan (when non-nil) for each line.
func (r *Runner) drain(rd io.Reader, out *transcript, scan func(string)) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		out.append(line)
		if r.Stream != nil {
			fmt.Fprintln(r.Stream, line)
		}
		if scan != nil {
			scan(line)
		}
	}
}

// scanVersionLine applies the version heuristic to a single stdout line:
// only lines mentioning a version or an upload/build are considered.
func scanVersionLine(line string) (string, bool) {
	if !strings.Contains(line, "Version:") &&
		!strings.Contains(line, "version:") &&
		!strings.Contains(line, "Successfully uploaded") &&
		!strings.Contains(line, "Build") {
		return "", false
	}
	return extractVersion(line)
}

// extractVersion pulls "X.Y.Z" or "X.Y.Z (N)" out of free-form text.
func extractVersion(line string) (string, bool) {
	m := versionPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if m[2] != "" {
		return fmt.Sprintf("%s (%s)", m[1], m[2]), true
	}
	return m[1], true
}

// LaneForBump maps a version bump request to its lane. Empty or unknown
// bumps run the plain build-number lane.
func LaneForBump(bump string) Lane {
	switch bump {
	case "patch":
		return LaneBetaPatch
	case "minor":
		return LaneBetaMinor
	default:
		return LaneBeta
	}
}
