package main

import (
	"context"
	"errors"
	"os"

	mdexec "github.com/alnah/go-mdexec"
	"github.com/alnah/go-mdexec/internal/assets"
	"github.com/alnah/go-mdexec/internal/config"
)

// Exit codes for the mdexec CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitExec    = 4 // Code block execution errors
	ExitTimeout = 5 // Render deadline exceeded or interrupted
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Cancellation and deadline (exit 5)
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitTimeout
	}

	// Execution errors (exit 4)
	if errors.Is(err, mdexec.ErrExecution) ||
		errors.Is(err, mdexec.ErrNoExecutor) ||
		errors.Is(err, ErrCommandFailed) {
		return ExitExec
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, mdexec.ErrEmptyMarkdown) ||
		errors.Is(err, mdexec.ErrInvalidTOCDepth) ||
		errors.Is(err, mdexec.ErrUnsupportedLocation) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooManyInputs) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidExecSpec) {
		return ExitUsage
	}

	return ExitGeneral
}
