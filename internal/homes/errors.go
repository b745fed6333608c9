package homes

import (
	"errors"
	"fmt"
)

// User-visible failure kinds. None of these is fatal to the process; the
// command adapters translate them into styled messages.
var (
	ErrNotFound         = errors.New("home not found")
	ErrLimitReached     = errors.New("home limit reached")
	ErrWorldMismatch    = errors.New("target world differs from current world")
	ErrPermissionDenied = errors.New("permission denied")
	ErrBadArgument      = errors.New("bad argument")
	ErrUnknownPlayer    = errors.New("unknown player")
)

// LimitError reports a rejected insertion along with the player's current
// usage. It matches ErrLimitReached under errors.Is.
type LimitError struct {
	Count int
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("home limit reached (%d/%d)", e.Count, e.Limit)
}

func (e *LimitError) Is(target error) bool {
	return target == ErrLimitReached
}
