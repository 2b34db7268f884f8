package service

import "errors"

var (
	// ErrIllegalTransition rejects a status change the lifecycle does not
	// allow from the reservation's current state.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrAccessDenied rejects a caller whose role or identity does not
	// permit the requested operation.
	ErrAccessDenied = errors.New("access denied")
)
