// Package main is the entry point for the adoclint CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/adoclint/internal/cli"
	"github.com/yaklabco/adoclint/internal/logging"

	// Import checks package to register built-in checkers via init().
	_ "github.com/yaklabco/adoclint/pkg/lint/checks"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrLintIssuesFound only selects the exit code.
		if !errors.Is(err, cli.ErrLintIssuesFound) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return 0
}
