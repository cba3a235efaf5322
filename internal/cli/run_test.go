package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot runs the root command with args and returns stdout, stderr and
// the command error.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := Execute(cmd)
	return stdout.String(), stderr.String(), err
}

func TestRunAllPassing(t *testing.T) {
	stdout, stderr, err := executeRoot(t, "run", filepath.Join("testdata", "suites"))
	require.NoError(t, err)

	want := fmt.Sprintf("  test %-40s ok\n", "test_reverse") +
		fmt.Sprintf("  test %-40s ok\n", "test_sum") +
		fmt.Sprintf("  test %-40s ok\n", "test_copy") +
		"\n  3 tests, 3 passed, 0 failed\n"
	assert.Equal(t, want, stdout)
	assert.Empty(t, stderr, "no logs without --verbose")
	assert.Equal(t, ExitSuccess, GetExitCode(err))
}

func TestRunWithFailures(t *testing.T) {
	stdout, _, err := executeRoot(t, "run", filepath.Join("testdata", "failing.yaml"))
	require.Error(t, err)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 test(s) failed")
	assert.Contains(t, stdout, "FAILED\n    expected: count_bits(0xF) == 4\n    at failing.yaml:8\n")
	assert.True(t, strings.HasSuffix(stdout, "\n  2 tests, 1 passed, 1 failed\n"))
}

func TestRunMultiplePaths(t *testing.T) {
	stdout, _, err := executeRoot(t, "run",
		filepath.Join("testdata", "failing.yaml"),
		filepath.Join("testdata", "suites", "arrays.yaml"),
	)
	require.Error(t, err)

	// Suites run in argument order.
	assert.Less(t, strings.Index(stdout, "test_bits"), strings.Index(stdout, "test_reverse"))
	assert.Contains(t, stdout, "4 tests, 3 passed, 1 failed")
}

func TestRunFilter(t *testing.T) {
	stdout, _, err := executeRoot(t, "run", filepath.Join("testdata", "suites"), "--filter", "str*")
	require.NoError(t, err)

	assert.Contains(t, stdout, "test_copy")
	assert.NotContains(t, stdout, "test_reverse")
	assert.Contains(t, stdout, "1 tests, 1 passed, 0 failed")
}

func TestRunCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing path",
			args:    []string{"run", filepath.Join("testdata", "nope.yaml")},
			wantErr: "suite path not found",
		},
		{
			name:    "invalid suite",
			args:    []string{"run", filepath.Join("testdata", "broken")},
			wantErr: "failed to load suite",
		},
		{
			name:    "bad filter",
			args:    []string{"run", filepath.Join("testdata", "suites"), "--filter", "[oops"},
			wantErr: "invalid filter pattern",
		},
		{
			name:    "filter matches nothing",
			args:    []string{"run", filepath.Join("testdata", "suites"), "--filter", "zzz*"},
			wantErr: "no suite files found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeRoot(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, stdout, "no test may run when suites cannot be loaded")
		})
	}
}

func TestRunRequiresArgs(t *testing.T) {
	_, _, err := executeRoot(t, "run")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid arguments")
}

func TestUsageErrorsAreCommandErrors(t *testing.T) {
	suite := filepath.Join("testdata", "suites", "arrays.yaml")
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "validate without args", args: []string{"validate"}, wantErr: "invalid arguments"},
		{name: "unknown run flag", args: []string{"run", "--bogus", suite}, wantErr: "invalid flags"},
		{name: "unknown global flag", args: []string{"--bogus", "run", suite}, wantErr: "invalid flags"},
		{name: "unknown command", args: []string{"nosuchcmd"}, wantErr: "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := executeRoot(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NotContains(t, stdout, "  test ")
			assert.Empty(t, stderr, "errors are printed once, by main")
		})
	}
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := executeRoot(t, "run", "-v", filepath.Join("testdata", "suites", "arrays.yaml"))
	require.NoError(t, err)

	assert.Contains(t, stderr, "suite loaded")
	assert.Contains(t, stderr, "test passed")
	assert.Contains(t, stderr, "run_id=")
	assert.NotContains(t, stdout, "run_id=")
}

func TestFindSuiteFiles(t *testing.T) {
	files, err := findSuiteFiles([]string{filepath.Join("testdata", "suites")}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("testdata", "suites", "arrays.yaml"),
		filepath.Join("testdata", "suites", "nested", "strings.yml"),
	}, files)
}
