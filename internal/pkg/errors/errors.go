package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources. Rows owned by
	// another user answer with the same sentinel as rows that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated is a generic sentinel for missing caller identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState is returned for journey transitions attempted from a
	// status that does not allow them.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict is returned when a second active journey would be created
	// for the same book and user.
	ErrConflict = errors.New("conflict")
	// ErrDependency marks infrastructure failures from the persistence or
	// feed layer; unlike the rest of the taxonomy it is potentially retryable.
	ErrDependency = errors.New("dependency failure")
)
