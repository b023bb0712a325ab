package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStoreUnavailable wraps snapshot store write failures. Reads degrade
	// row-by-row instead; only writes surface this.
	ErrStoreUnavailable = errors.New("snapshot store unavailable")
	// ErrDecryptFailed marks a snapshot row whose blob could not be opened.
	ErrDecryptFailed = errors.New("decrypt failed")
)
