package parser

import "errors"

var (
	// ErrMalformedAddress is returned when an address token cannot be
	// parsed.
	ErrMalformedAddress = errors.New("malformed address")

	// ErrMalformedLine is returned when a connection line cannot be
	// parsed.
	ErrMalformedLine = errors.New("malformed connection line")
)
