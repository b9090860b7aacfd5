package progression

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitprogress/internal/users"
)

// Error kinds returned by Service. Callers match them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")

	// ErrLocked is an ErrInvalidArgument: the workout is not unlocked for the user yet.
	ErrLocked = fmt.Errorf("%w: workout is locked", ErrInvalidArgument)
)

func isKind(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInternal)
}

// storeErr maps a record store error onto an error kind, keeping the cause.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case isKind(err):
		return err
	case errors.Is(err, users.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, users.ErrUserExists):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: request aborted: %w", ErrInternal, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
