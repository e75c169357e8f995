package alignment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned before any query when the date input cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrSourceUnavailable wraps every failure of the goal directory or an activity ledger.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrMissingUser is returned when no user id was supplied.
	ErrMissingUser = errors.New("user id is required")
)

func sourceError(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, source, err)
}
