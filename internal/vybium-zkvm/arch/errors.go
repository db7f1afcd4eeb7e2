package arch

import "fmt"

// ExecutionErrorCode classifies runtime execution failures. Contract
// violations (bad access lengths, shape mismatches at construction) are not
// errors but panics; see the memory package.
type ExecutionErrorCode int

const (
	// ErrUnknown represents an unclassified execution failure.
	ErrUnknown ExecutionErrorCode = iota

	// ErrHintOutOfBounds means an I/O opcode demanded more hint input than
	// remains in the stream.
	ErrHintOutOfBounds

	// ErrDisabledOpcode means the fetched opcode resolves to no enabled chip.
	ErrDisabledOpcode

	// ErrPCOutOfBounds means the program counter left the program.
	ErrPCOutOfBounds
)

// ExecutionError is a typed runtime execution failure carrying the program
// counter at the point of failure, so callers can distinguish "program ran out
// of input" from "program is malformed".
type ExecutionError struct {
	Code    ExecutionErrorCode
	PC      uint32
	Message string
	Cause   error
}

// Error returns the error message.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("execution error [%d] at pc=%d: %s (caused by: %v)", e.Code, e.PC, e.Message, e.Cause)
	}
	return fmt.Sprintf("execution error [%d] at pc=%d: %s", e.Code, e.PC, e.Message)
}

// Unwrap returns the cause of the error.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error by code.
func (e *ExecutionError) Is(target error) bool {
	t, ok := target.(*ExecutionError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewHintOutOfBounds reports hint stream underflow at pc.
func NewHintOutOfBounds(pc uint32) *ExecutionError {
	return &ExecutionError{
		Code:    ErrHintOutOfBounds,
		PC:      pc,
		Message: "hint stream exhausted",
	}
}

// NewDisabledOpcode reports an opcode with no enabled chip at pc.
func NewDisabledOpcode(pc uint32, op Opcode) *ExecutionError {
	return &ExecutionError{
		Code:    ErrDisabledOpcode,
		PC:      pc,
		Message: fmt.Sprintf("opcode %s is not enabled", op),
	}
}

// NewPCOutOfBounds reports a program counter outside the program.
func NewPCOutOfBounds(pc uint32) *ExecutionError {
	return &ExecutionError{
		Code:    ErrPCOutOfBounds,
		PC:      pc,
		Message: "program counter outside program bounds",
	}
}
