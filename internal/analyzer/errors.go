package analyzer

import "errors"

var (
	// ErrUnsupportedTaskType is returned when no analyzer is registered for a task type.
	ErrUnsupportedTaskType = errors.New("unsupported task type")

	// ErrNoInputFiles is returned when a request names no input files.
	ErrNoInputFiles = errors.New("no input files")

	// ErrInputCount is returned when a request names the wrong number of input files.
	ErrInputCount = errors.New("unexpected input file count")

	// ErrMissingPort is returned when a snapshot comparison has no target port.
	ErrMissingPort = errors.New("target port is required")

	// ErrEmptyData is returned when the input contains no usable records.
	ErrEmptyData = errors.New("input data is empty")
)
