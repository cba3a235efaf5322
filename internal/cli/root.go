package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// logger builds the per-invocation logger, writing to w when verbose.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	return newLogger(w, o.Verbose)
}

// NewRootCommand creates the root command for the clings CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "clings",
		Short: "clings - exercise test harness",
		Long: `Run YAML-declared test suites through the clings test harness.

Each suite's tests print one transcript line apiece, followed by a single
summary line. The exit code is 0 only when every test passed.`,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints errors once, after mapping the exit code
	}

	// Flag errors are inherited by every subcommand.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose diagnostic logging to stderr")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// Execute runs cmd and returns its error with an exit code attached. Errors
// raised by cobra itself, such as an unknown command, are command errors.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return WrapExitError(ExitCommandError, "invalid command", err)
}

// requireArgs is cobra.MinimumNArgs with a command-error exit code.
func requireArgs(n int) cobra.PositionalArgs {
	check := cobra.MinimumNArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}
