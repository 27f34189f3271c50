package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates the format tag is not registered
	// with the decoder registry. Not retried; the caller should correct
	// the declared format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMalformedInput indicates the content does not parse under its
	// claimed format (invalid markup, truncated archive, bad encoding).
	// Not retried; the caller should verify or re-export the file.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidPosition indicates a position write outside the valid
	// segment range. Never silently clamped; callers that want clamping
	// must clamp explicitly.
	ErrInvalidPosition = errors.New("invalid reading position")

	// ErrStorageFailure indicates the position store is unreachable or
	// corrupt. A bounded retry is permitted; after that the reading
	// session continues in memory and the error surfaces as a warning.
	ErrStorageFailure = errors.New("storage failure")
)
