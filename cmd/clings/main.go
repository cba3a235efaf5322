package main

import (
	"fmt"
	"os"

	"github.com/roach88/clings/internal/cli"
)

func main() {
	err := cli.Execute(cli.NewRootCommand())
	code := cli.GetExitCode(err)

	// Test and validation failures have already been reported on stdout.
	if err != nil && code != cli.ExitFailure {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}
