package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAccessDenied is returned when the access gate did not authorize the
	// operation.
	ErrAccessDenied = errors.New("access denied")

	// ErrGateUnavailable is returned when no identity check could run. It
	// also matches ErrAccessDenied.
	ErrGateUnavailable = fmt.Errorf("%w: identity check unavailable", ErrAccessDenied)

	// ErrLockedOut is returned while the gate refuses checks after too many
	// failed attempts. It also matches ErrAccessDenied.
	ErrLockedOut = fmt.Errorf("%w: locked out", ErrAccessDenied)

	// ErrInvalidInput wraps validation failures of user input.
	ErrInvalidInput = errors.New("invalid input")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
