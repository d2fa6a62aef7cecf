package validation

import (
	stderrors "errors"
	"testing"

	"github.com/vnykmshr/timerflow/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		module    string
		field     string
		value     int
		wantError bool
	}{
		{"positive value", "test", "count", 10, false},
		{"positive value 1", "test", "count", 1, false},
		{"zero value", "test", "count", 0, true},
		{"negative value", "test", "count", -1, true},
		{"large positive", "test", "count", 1000000, false},
		{"large negative", "test", "count", -1000000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive(tt.module, tt.field, tt.value)

			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantError bool
	}{
		{"positive value", 10.5, false},
		{"zero value", 0.0, false},
		{"negative value", -1.5, true},
		{"small negative", -0.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("test", "rate", tt.value)
			if tt.wantError != (err != nil) {
				t.Errorf("ValidateNonNegative(%v) error = %v, wantError %v", tt.value, err, tt.wantError)
			}
		})
	}
}

func TestValidateWork(t *testing.T) {
	if err := ValidateWork("delayqueue", "work", func() {}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	var nilWork func()
	err := ValidateWork("delayqueue", "work", nilWork)
	if err == nil {
		t.Fatal("expected error for nil work")
	}
	if got, want := err.Error(), "delayqueue: invalid work=<nil> (cannot be nil) - provide a valid work"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidateNotEmpty(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantError bool
	}{
		{"non-empty string", "value", false},
		{"whitespace", " ", false}, // Whitespace is not empty
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotEmpty("test", "name", tt.value)
			if tt.wantError != (err != nil) {
				t.Errorf("ValidateNotEmpty(%q) error = %v, wantError %v", tt.value, err, tt.wantError)
			}
		})
	}
}

func TestValidationErrorDetails(t *testing.T) {
	err := ValidatePositive("workerpool", "worker_count", -5)
	if err == nil {
		t.Fatal("expected error")
	}

	valErr, ok := err.(*errors.ValidationError)
	if !ok {
		t.Fatalf("could not cast %T to ValidationError", err)
	}

	if valErr.Module != "workerpool" {
		t.Errorf("Module = %q, want %q", valErr.Module, "workerpool")
	}
	if valErr.Field != "worker_count" {
		t.Errorf("Field = %q, want %q", valErr.Field, "worker_count")
	}
	if valErr.Value != -5 {
		t.Errorf("Value = %v, want %v", valErr.Value, -5)
	}
	if valErr.Reason != "must be positive" {
		t.Errorf("Reason = %q, want %q", valErr.Reason, "must be positive")
	}
	if valErr.Hint != "value must be greater than 0" {
		t.Errorf("Hint = %q, want %q", valErr.Hint, "value must be greater than 0")
	}
}

func TestValidationErrorWrapping(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{"ValidatePositive", ValidatePositive("test", "field", -1)},
		{"ValidateNonNegative", ValidateNonNegative("test", "field", -1.0)},
		{"ValidateWork", ValidateWork("test", "field", nil)},
		{"ValidateNotEmpty", ValidateNotEmpty("test", "field", "")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err == nil {
				t.Fatal("expected error")
			}
			if !stderrors.Is(tc.err, errors.ErrInvalidArgument) {
				t.Errorf("%v should wrap ErrInvalidArgument", tc.err)
			}
		})
	}
}
