package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/clings/internal/harness"
	"github.com/roach88/clings/internal/suite"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Filter string // suite file filter (glob pattern on the base name)
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <suite.yaml|dir>...",
		Short: "Run test suites and report",
		Long: `Run every test of the given suites, in order, through one harness.

Directories contribute their .yaml and .yml files in lexical order.
All suites are loaded before the first test runs.

Exit codes:
  0 - All tests passed
  1 - One or more tests failed
  2 - Command error (missing path, invalid suite, bad filter)

Examples:
  clings run suites/strings1.yaml
  clings run ./suites
  clings run ./suites --filter "strings*"`,
		Args:          requireArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter suite files by glob pattern")

	return cmd
}

func runSuites(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	logger := opts.logger(cmd.ErrOrStderr())

	files, err := findSuiteFiles(paths, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find suites", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, "no suite files found")
	}

	suites := make([]*suite.Suite, 0, len(files))
	for _, file := range files {
		s, err := suite.LoadSuite(file)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load suite", err)
		}
		logger.Debug("suite loaded", "path", file, "suite", s.Name, "tests", len(s.Tests))
		suites = append(suites, s)
	}

	h := harness.New(
		harness.WithOutput(cmd.OutOrStdout()),
		harness.WithLogger(logger),
	)
	suite.Run(h, suites...)

	if code := h.Report(); code != ExitSuccess {
		return NewExitError(code, fmt.Sprintf("%d test(s) failed", h.State().Failed))
	}
	return nil
}

// findSuiteFiles expands paths into suite files. Directories are walked for
// .yaml and .yml files; explicit files are taken as given. The filter, if
// set, is matched against each file's base name without extension.
func findSuiteFiles(paths []string, filter string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", filter, err)
		}
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("suite path not found: %w", err)
		}

		if !info.IsDir() {
			if matchesFilter(path, filter) {
				files = append(files, path)
			}
			continue
		}

		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !isSuiteFile(p) {
				return nil
			}
			if matchesFilter(p, filter) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// isSuiteFile reports whether path has a YAML extension.
func isSuiteFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

// matchesFilter applies the --filter glob to the file's base name. The
// pattern has already been validated.
func matchesFilter(path, filter string) bool {
	if filter == "" {
		return true
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	matched, _ := filepath.Match(filter, name)
	return matched
}
