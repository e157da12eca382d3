package hyperloglog

import "errors"

var (
	// ErrInvalidParameter is returned when a precision is outside [4, 16] or
	// persisted register state is malformed.
	ErrInvalidParameter = errors.New("hyperloglog: invalid parameter")

	// ErrIncompatibleState is returned when merging estimators of different
	// precisions.
	ErrIncompatibleState = errors.New("hyperloglog: incompatible state")
)
