// Package parser defines shared options and errors for the dump parsers.
package parser

// Options holds common parsing options.
type Options struct {
	// StrictMode aborts the whole file on the first malformed line.
	// When false (the default), malformed lines are skipped and counted.
	StrictMode bool
}

// DefaultOptions returns default parsing options.
func DefaultOptions() *Options {
	return &Options{StrictMode: false}
}
