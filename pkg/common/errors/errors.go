package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the timerflow library

var (
	// ErrInvalidArgument indicates that a caller passed an absent or malformed
	// argument, such as a nil work function or an unknown time unit
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrExecutionFault indicates that a task's work panicked while running
	ErrExecutionFault = errors.New("task execution fault")

	// ErrCancelled indicates that a blocked wait was abandoned because its
	// context was canceled
	ErrCancelled = errors.New("wait cancelled")

	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")
)

// ValidationError describes an argument or configuration value that was
// rejected. It unwraps to ErrInvalidArgument.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// ExecutionFault records a panic raised by a task's work on a worker.
// It unwraps to ErrExecutionFault, and to the recovered value as well when
// that value is itself an error.
type ExecutionFault struct {
	WorkerID  int
	Seq       uint64
	Recovered interface{}
	Stack     []byte
}

// NewExecutionFault creates an ExecutionFault for a recovered panic value.
func NewExecutionFault(workerID int, seq uint64, recovered interface{}, stack []byte) *ExecutionFault {
	return &ExecutionFault{
		WorkerID:  workerID,
		Seq:       seq,
		Recovered: recovered,
		Stack:     stack,
	}
}

func (e *ExecutionFault) Error() string {
	return fmt.Sprintf("worker %d: task %d panicked: %v", e.WorkerID, e.Seq, e.Recovered)
}

func (e *ExecutionFault) Unwrap() []error {
	if err, ok := e.Recovered.(error); ok {
		return []error{ErrExecutionFault, err}
	}
	return []error{ErrExecutionFault}
}

// Cancelled wraps a context error as ErrCancelled.
func Cancelled(cause error) error {
	if cause == nil {
		return ErrCancelled
	}
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}

// IsValidationError returns true if err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsExecutionFault returns true if err is or wraps an ExecutionFault
func IsExecutionFault(err error) bool {
	var fault *ExecutionFault
	return errors.As(err, &fault)
}

// IsCancelled returns true if err indicates an abandoned wait
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
