package lesson

import "github.com/fieldlab/fieldlab/internal/cplx"

// DefaultTolerance is the comparison tolerance used when an exercise
// does not specify one.
const DefaultTolerance = 1e-9

// Lesson is a compiled lesson spec.
type Lesson struct {
	// Name is the lesson's label in the CUE file (lesson.<name>).
	Name string `json:"name"`

	// Title is the human-readable lesson title.
	Title string `json:"title"`

	// Exercises lists the lesson's exercises in authored order.
	Exercises []Exercise `json:"exercises"`
}

// Exercise is one expression with an expected outcome.
// Exactly one of Want and WantError is set in a valid exercise.
type Exercise struct {
	// Name identifies the exercise within its lesson.
	Name string `json:"name"`

	// Expr is the expression to evaluate.
	Expr string `json:"expr"`

	// Want is the expected value, compared within Tolerance.
	Want *cplx.Complex `json:"want,omitempty"`

	// WantError is the expected domain error code (e.g. "DOMAIN").
	WantError string `json:"want_error,omitempty"`

	// Tolerance overrides DefaultTolerance when positive.
	Tolerance float64 `json:"tolerance,omitempty"`
}

// tolerance returns the effective comparison tolerance.
func (e Exercise) tolerance() float64 {
	if e.Tolerance > 0 {
		return e.Tolerance
	}
	return DefaultTolerance
}
