// Package main is the entry point for the mdview CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/mdview/internal/cli"
	"github.com/yaklabco/mdview/internal/logging"
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

	err := rootCmd.Execute()
	if err != nil && !quiet(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCodeFromError(err)
}

// quiet reports whether err has already been shown to the user. Parse
// failures are printed by the reporter and read failures by the renderer.
func quiet(err error) bool {
	return errors.Is(err, cli.ErrParseFailures) || errors.Is(err, cli.ErrReported)
}
