package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Schema errors
	ErrColumnNotFound   = errors.New("column not found")
	ErrColumnDuplicated = errors.New("column selected more than once")
	ErrNoNumericColumns = errors.New("no numeric columns available")
	ErrNoTokensFound    = errors.New("no tokens found in column")

	// Explosion errors
	ErrLengthMismatch = errors.New("unequal token lengths in aligned columns")
	ErrTooFewColumns  = errors.New("aligned explosion requires at least two columns")
	ErrEmptySeparator = errors.New("separator must not be empty")

	// Input errors
	ErrInvalidThreshold  = errors.New("threshold must be in [0,1]")
	ErrUnsupportedFreq   = errors.New("unsupported resample frequency")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingHeaderRow  = errors.New("input must have a header row and at least one data row")
)

// Error constructors with context
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

func NewMissingColumnsError(columns []string) error {
	return fmt.Errorf("%w: missing required columns %v", ErrColumnNotFound, columns)
}

// Error checking helpers
func IsColumnNotFound(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

func IsLengthMismatch(err error) bool {
	return errors.Is(err, ErrLengthMismatch)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrColumnDuplicated) ||
		errors.Is(err, ErrTooFewColumns)
}
