package service

import (
	"errors"
	"fmt"
)

// Sentinel kinds for service errors.
var (
	ErrTooManyUsers = errors.New("too many usernames requested")
)

// NewKind tags an operation with a sentinel kind.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}
