package vybiumzkvm

import (
	"errors"

	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/arch"
)

// ExecutionError is a typed runtime execution failure carrying the program
// counter at the point of failure.
type ExecutionError = arch.ExecutionError

// ExecutionErrorCode classifies runtime execution failures.
type ExecutionErrorCode = arch.ExecutionErrorCode

// Execution error codes.
const (
	ErrHintOutOfBounds = arch.ErrHintOutOfBounds
	ErrDisabledOpcode  = arch.ErrDisabledOpcode
	ErrPCOutOfBounds   = arch.ErrPCOutOfBounds
)

// AsExecutionError extracts the typed execution error from err, if any.
func AsExecutionError(err error) (*ExecutionError, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr, true
	}
	return nil, false
}
