package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no input path is specified.
	ErrNoInput = errors.New("no input specified: provide one or more file or directory paths")

	// ErrEmptyOutputPath is returned when the output path is empty.
	// An empty path cannot receive the report.
	ErrEmptyOutputPath = errors.New("invalid output path: must not be empty")

	// ErrEmptyHistoryDir is returned when history saving is enabled but
	// no directory is configured for the database.
	ErrEmptyHistoryDir = errors.New("invalid history directory: must not be empty when history is enabled")
)
