// Package testutil provides a CLI harness for command tests: each run
// gets an isolated config and cache under t.TempDir, so tests never
// touch the user's real state.
package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"focusquest/cmd/focusquest/cmd"
)

// CLITest runs CLI invocations against an isolated state directory.
// State persists across Execute calls within one test, mirroring
// repeated invocations by a real user.
type CLITest struct {
	t      *testing.T
	tmpDir string
	stdin  io.Reader
}

// NewCLITest creates a harness with a fresh temp directory.
func NewCLITest(t *testing.T) *CLITest {
	t.Helper()
	return &CLITest{t: t, tmpDir: t.TempDir()}
}

// TmpDir returns the isolated state directory.
func (c *CLITest) TmpDir() string {
	return c.tmpDir
}

// SetStdin feeds the next Execute call's interactive input.
func (c *CLITest) SetStdin(input string) {
	c.stdin = strings.NewReader(input)
}

// SetConfig writes the harness config file consumed by every Execute.
func (c *CLITest) SetConfig(yamlContent string) {
	c.t.Helper()
	if err := os.WriteFile(c.configPath(), []byte(yamlContent), 0644); err != nil {
		c.t.Fatalf("write config: %v", err)
	}
}

func (c *CLITest) configPath() string {
	return filepath.Join(c.tmpDir, "config.yaml")
}

func (c *CLITest) cachePath() string {
	return filepath.Join(c.tmpDir, "cache.db")
}

// Execute runs one CLI invocation and returns stdout, stderr, and the
// exit code. The isolation flags are appended automatically.
func (c *CLITest) Execute(args ...string) (stdout, stderr string, exitCode int) {
	c.t.Helper()

	full := append([]string(nil), args...)
	full = append(full, "--config", c.configPath(), "--cache", c.cachePath())

	var outBuf, errBuf bytes.Buffer
	root := cmd.NewRoot(&outBuf, &errBuf)
	root.SetArgs(full)
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	stdin := c.stdin
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	root.SetIn(stdin)
	c.stdin = nil

	exitCode = 0
	if err := root.Execute(); err != nil {
		errBuf.WriteString("Error: " + err.Error() + "\n")
		exitCode = 1
	}
	return outBuf.String(), errBuf.String(), exitCode
}

// MustExecute runs a command and fails the test on a non-zero exit.
func (c *CLITest) MustExecute(args ...string) string {
	c.t.Helper()
	stdout, stderr, exitCode := c.Execute(args...)
	if exitCode != 0 {
		c.t.Fatalf("exit %d for %v\nstdout: %s\nstderr: %s", exitCode, args, stdout, stderr)
	}
	return stdout
}

// ExecuteAndFail runs a command and fails the test on a zero exit.
func (c *CLITest) ExecuteAndFail(args ...string) (stdout, stderr string) {
	c.t.Helper()
	stdout, stderr, exitCode := c.Execute(args...)
	if exitCode == 0 {
		c.t.Fatalf("expected failure for %v\nstdout: %s", args, stdout)
	}
	return stdout, stderr
}

// AssertContains fails the test when output lacks the expected string.
func AssertContains(t *testing.T, output, expected string) {
	t.Helper()
	if !strings.Contains(output, expected) {
		t.Errorf("output missing %q:\n%s", expected, output)
	}
}

// AssertNotContains fails the test when output has the unexpected string.
func AssertNotContains(t *testing.T, output, unexpected string) {
	t.Helper()
	if strings.Contains(output, unexpected) {
		t.Errorf("output should not contain %q:\n%s", unexpected, output)
	}
}
