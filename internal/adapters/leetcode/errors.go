package leetcode

import (
	"errors"
	"fmt"
)

// Sentinel kinds for upstream client errors. Callers match with errors.Is.
var (
	// ErrEmptyUsername rejects a request before it reaches the wire.
	ErrEmptyUsername = errors.New("username must not be empty")

	// ErrBlocked marks an access denial (HTTP 403) from the upstream.
	ErrBlocked = errors.New("upstream access denied")

	// ErrUpstream marks any other non-success HTTP status.
	ErrUpstream = errors.New("upstream request failed")

	// ErrMalformed marks a response missing the expected data shape.
	ErrMalformed = errors.New("unexpected upstream response shape")
)

// NewKind tags an operation with a sentinel kind.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags err with both an operation and a sentinel kind.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
