package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdview/internal/configloader"
	"github.com/yaklabco/mdview/pkg/runner"
)

// Exit codes for mdview.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates the command ran but some input could not be
	// processed, or a parse cross-check found mismatches.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of a parse run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitFailure
	}
	return ExitSuccess
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUnknownLanguage), errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr), errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}
