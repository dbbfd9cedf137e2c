package cplx

import (
	"errors"
	"fmt"
)

// DomainError reports an operation applied outside its mathematical
// domain. The only producer in this package is Inv (and Div, which is
// defined through it) on a value with zero squared magnitude.
type DomainError struct {
	// Code identifies the error category.
	Code DomainErrorCode

	// Op names the operation that failed ("inv", "div").
	Op string

	// Operand is the offending value.
	Operand Complex
}

// DomainErrorCode categorizes domain errors.
type DomainErrorCode string

const (
	// ErrCodeZeroInverse indicates Inv of a value whose squared
	// magnitude is exactly zero.
	ErrCodeZeroInverse DomainErrorCode = "DOMAIN"
)

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s undefined for (%g%+gi): squared magnitude is zero", e.Code, e.Op, e.Operand.Re, e.Operand.Im)
}

// IsDomainError returns true if err is (or wraps) a *DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// NewZeroInverseError creates a DomainError for Inv of a zero-magnitude value.
func NewZeroInverseError(operand Complex) *DomainError {
	return &DomainError{
		Code:    ErrCodeZeroInverse,
		Op:      "inv",
		Operand: operand,
	}
}
