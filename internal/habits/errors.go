package habits

import (
	"errors"
	"fmt"

	"github.com/habitkit/habit-api/internal/database"
)

var (
	// ErrNotFound indicates the habit or log is absent, archived, or owned by
	// someone else. Surfaced as a 404-equivalent; never retried.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a malformed date, unrecognized status or
	// frequency, or an out-of-range rating. Surfaced directly; never retried.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreUnavailable indicates the underlying store failed. Propagated as
	// a transient failure; retry policy belongs to the transport layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// invalidInputf wraps ErrInvalidInput with detail for the caller
func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// notFoundf wraps ErrNotFound with detail for the caller
func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// storeErr maps repository errors onto the engine taxonomy
func storeErr(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
