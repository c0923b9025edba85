package httpw

import "errors"

var (
	// ErrConflictingFraming is returned by preparation when a message
	// declares both a fixed content length and chunked transfer
	// encoding, or declares chunked on a protocol version that cannot
	// carry it. Nothing is written to the transport.
	ErrConflictingFraming = errors.New("httpw: conflicting length and transfer encoding")

	// ErrMissingStartLine is returned by preparation when a request
	// lacks a method or target, or a response lacks a status code.
	ErrMissingStartLine = errors.New("httpw: message has no start line")
)
