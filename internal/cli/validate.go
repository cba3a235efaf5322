package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/clings/internal/suite"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <suite.yaml|dir>...",
		Short: "Validate suites without running them",
		Long: `Parse and validate suite files without executing any test.

Reports every invalid suite rather than stopping at the first.

Exit codes:
  0 - All suites valid
  1 - One or more suites invalid
  2 - Command error (missing path)`,
		Args:          requireArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	logger := opts.logger(cmd.ErrOrStderr())
	w := cmd.OutOrStdout()

	files, err := findSuiteFiles(paths, "")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find suites", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, "no suite files found")
	}

	invalid := 0
	for _, file := range files {
		s, err := suite.LoadSuite(file)
		if err != nil {
			invalid++
			fmt.Fprintf(w, "✗ %s\n", file)
			fmt.Fprintf(w, "  %v\n", err)
			logger.Debug("suite invalid", "path", file, "error", err)
			continue
		}
		fmt.Fprintf(w, "✓ %s (%d tests)\n", s.Name, len(s.Tests))
		logger.Debug("suite valid", "path", file, "suite", s.Name)
	}

	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d suite(s) invalid", invalid))
	}
	return nil
}
