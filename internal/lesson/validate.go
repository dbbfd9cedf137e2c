package lesson

import (
	"fmt"

	"github.com/fieldlab/fieldlab/internal/eval"
)

// Validation error codes.
const (
	CodeMissingField  = "V001"
	CodeDuplicateName = "V002"
	CodeBadExpr       = "V003"
	CodeConflict      = "V004"
	CodeBadTolerance  = "V005"
)

// ValidationError describes one semantic problem in a compiled lesson.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled lesson against semantic rules.
// Returns all errors found (does not fail-fast).
//
// Rules:
//   - title must be non-empty
//   - exercise names must be non-empty and unique within the lesson
//   - every expr must parse
//   - exactly one of want / wantError per exercise
//   - tolerance must be non-negative
func Validate(l *Lesson) []ValidationError {
	var errs []ValidationError

	if l.Title == "" {
		errs = append(errs, ValidationError{
			Field: "title", Code: CodeMissingField,
			Message: "title must be non-empty",
		})
	}

	seen := make(map[string]bool, len(l.Exercises))
	for i, ex := range l.Exercises {
		field := fmt.Sprintf("exercises[%d]", i)

		if ex.Name == "" {
			errs = append(errs, ValidationError{
				Field: field + ".name", Code: CodeMissingField,
				Message: "exercise name must be non-empty",
			})
		} else if seen[ex.Name] {
			errs = append(errs, ValidationError{
				Field: field + ".name", Code: CodeDuplicateName,
				Message: fmt.Sprintf("duplicate exercise name %q", ex.Name),
			})
		}
		seen[ex.Name] = true

		if _, err := eval.Parse(ex.Expr); err != nil {
			errs = append(errs, ValidationError{
				Field: field + ".expr", Code: CodeBadExpr,
				Message: fmt.Sprintf("expression does not parse: %v", err),
			})
		}

		switch {
		case ex.Want == nil && ex.WantError == "":
			errs = append(errs, ValidationError{
				Field: field, Code: CodeConflict,
				Message: "exercise needs want or wantError",
			})
		case ex.Want != nil && ex.WantError != "":
			errs = append(errs, ValidationError{
				Field: field, Code: CodeConflict,
				Message: "want and wantError are mutually exclusive",
			})
		}

		if ex.Tolerance < 0 {
			errs = append(errs, ValidationError{
				Field: field + ".tolerance", Code: CodeBadTolerance,
				Message: fmt.Sprintf("tolerance must be non-negative, got %g", ex.Tolerance),
			})
		}
	}

	return errs
}
