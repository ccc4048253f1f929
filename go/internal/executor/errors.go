package executor

import "errors"

// ErrValidation is returned when a command is missing required fields or
// violates an entity invariant. Nothing is submitted and no state changes.
var ErrValidation = errors.New("validation failed")
