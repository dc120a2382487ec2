package mdexec

import (
	"errors"

	"github.com/alnah/go-mdexec/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// ErrConversion indicates Markdown conversion failed, at any
	// nesting depth. It is the same value the pipeline wraps, so
	// errors.Is works across package boundaries.
	ErrConversion = pipeline.ErrConversion

	// ErrUnsupportedLocation indicates a source placement outside the
	// recognized set was requested.
	ErrUnsupportedLocation = errors.New("unsupported location for sources")

	// ErrNoExecutor indicates an exec-marked block names a language
	// with no registered executor.
	ErrNoExecutor = errors.New("no executor registered for language")

	// ErrExecution indicates a registered executor failed to run a block.
	ErrExecution = errors.New("block execution failed")

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")
)
