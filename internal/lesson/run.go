package lesson

import (
	"errors"
	"fmt"

	"github.com/fieldlab/fieldlab/internal/cplx"
	"github.com/fieldlab/fieldlab/internal/eval"
)

// Outcome is the result of running one exercise.
type Outcome struct {
	Exercise string `json:"exercise"`
	Expr     string `json:"expr"`
	Pass     bool   `json:"pass"`
	Detail   string `json:"detail,omitempty"`
}

// Report is the result of running a whole lesson.
type Report struct {
	Lesson   string    `json:"lesson"`
	Title    string    `json:"title"`
	Outcomes []Outcome `json:"outcomes"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
}

// Pass reports whether every exercise passed.
func (r Report) Pass() bool {
	return r.Failed == 0
}

// Run evaluates every exercise in the lesson and compares outcomes
// against the expectations.
func Run(l *Lesson) Report {
	report := Report{Lesson: l.Name, Title: l.Title}

	for _, ex := range l.Exercises {
		outcome := runExercise(ex)
		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
	}

	return report
}

func runExercise(ex Exercise) Outcome {
	outcome := Outcome{Exercise: ex.Name, Expr: ex.Expr}

	got, err := eval.Eval(ex.Expr)

	switch {
	case ex.WantError != "":
		var de *cplx.DomainError
		if err == nil {
			outcome.Detail = fmt.Sprintf("expected error %s, got %g%+gi", ex.WantError, got.Re, got.Im)
		} else if !errors.As(err, &de) {
			outcome.Detail = fmt.Sprintf("expected domain error %s, got %v", ex.WantError, err)
		} else if string(de.Code) != ex.WantError {
			outcome.Detail = fmt.Sprintf("expected error %s, got %s", ex.WantError, de.Code)
		} else {
			outcome.Pass = true
		}

	case err != nil:
		outcome.Detail = fmt.Sprintf("evaluation failed: %v", err)

	case !cplx.ApproxEqual(got, *ex.Want, ex.tolerance()):
		outcome.Detail = fmt.Sprintf("want %g%+gi, got %g%+gi (tolerance %g)",
			ex.Want.Re, ex.Want.Im, got.Re, got.Im, ex.tolerance())

	default:
		outcome.Pass = true
	}

	return outcome
}
