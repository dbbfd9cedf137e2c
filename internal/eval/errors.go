package eval

import (
	"errors"
	"fmt"
)

// ParseError reports a lexical or syntactic error with the byte
// offset of the offending input.
type ParseError struct {
	Pos     int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Message)
}

// IsParseError returns true if err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// EvalError reports a failure while evaluating a well-formed
// expression. It wraps the underlying cause (typically a
// cplx.DomainError from inv or division).
type EvalError struct {
	// Expr is the source text of the failing subexpression.
	Expr string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %q: %v", e.Expr, e.Err)
}

// Unwrap exposes the underlying cause for errors.As / errors.Is.
func (e *EvalError) Unwrap() error {
	return e.Err
}
