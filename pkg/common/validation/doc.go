// Package validation provides common validation utilities for arguments and
// configuration parameters across the timerflow library.
//
// This package offers reusable validation functions that help ensure
// consistent error messages and reduce boilerplate code in constructors,
// submission paths and configuration parsers. Every failure is an
// *errors.ValidationError, which unwraps to errors.ErrInvalidArgument.
package validation
