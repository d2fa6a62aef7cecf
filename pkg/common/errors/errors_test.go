package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrInvalidArgument", ErrInvalidArgument, "invalid argument"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
		{"ErrExecutionFault", ErrExecutionFault, "task execution fault"},
		{"ErrCancelled", ErrCancelled, "wait cancelled"},
		{"ErrClosed", ErrClosed, "resource is closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "workerpool",
				Field:  "worker_count",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "workerpool: invalid worker_count=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "delayqueue",
				Field:  "unit",
				Value:  0,
				Reason: "unknown time unit",
				Hint:   "use one of the exported Unit constants",
			},
			want: "delayqueue: invalid unit=0 (unknown time unit) - use one of the exported Unit constants",
		},
		{
			name: "nil value",
			err: &ValidationError{
				Module: "delayqueue",
				Field:  "work",
				Value:  nil,
				Reason: "cannot be nil",
			},
			want: "delayqueue: invalid work=<nil> (cannot be nil)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := NewValidationError("test", "field", 0, "test")

	if verr.Unwrap() != ErrInvalidArgument {
		t.Errorf("Unwrap() = %v, want ErrInvalidArgument", verr.Unwrap())
	}
	if !errors.Is(verr, ErrInvalidArgument) {
		t.Error("ValidationError should wrap ErrInvalidArgument")
	}

	wrapped := fmt.Errorf("submit: %w", verr)
	if !errors.Is(wrapped, ErrInvalidArgument) {
		t.Error("wrapped ValidationError should still match ErrInvalidArgument")
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try using a positive value")

	if err.Hint != "try using a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try using a positive value")
	}

	// Should return same instance for chaining
	if result := err.WithHint("new hint"); result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestExecutionFault(t *testing.T) {
	t.Run("string panic", func(t *testing.T) {
		fault := NewExecutionFault(3, 42, "boom", []byte("stack"))

		if got, want := fault.Error(), "worker 3: task 42 panicked: boom"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		if !errors.Is(fault, ErrExecutionFault) {
			t.Error("ExecutionFault should wrap ErrExecutionFault")
		}
		if !IsExecutionFault(fmt.Errorf("ctx: %w", fault)) {
			t.Error("IsExecutionFault should see through wrapping")
		}
	})

	t.Run("error panic", func(t *testing.T) {
		cause := errors.New("disk full")
		fault := NewExecutionFault(0, 1, cause, nil)

		if !errors.Is(fault, cause) {
			t.Error("ExecutionFault should wrap a recovered error value")
		}
		if !errors.Is(fault, ErrExecutionFault) {
			t.Error("ExecutionFault should still wrap ErrExecutionFault")
		}
		if !strings.Contains(fault.Error(), "disk full") {
			t.Errorf("Error() = %q, want it to mention the cause", fault.Error())
		}
	})
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Cancelled(ctx.Err())
	if !IsCancelled(err) {
		t.Error("Cancelled should wrap ErrCancelled")
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("Cancelled should wrap the context error")
	}

	if Cancelled(nil) != ErrCancelled {
		t.Error("Cancelled(nil) should return ErrCancelled")
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation error", NewValidationError("test", "field", 0, "test"), true},
		{"wrapped validation error", fmt.Errorf("outer: %w", NewValidationError("test", "field", 0, "test")), true},
		{"execution fault", NewExecutionFault(0, 0, "x", nil), false},
		{"standard error", errors.New("test"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}
