package lesson

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/fieldlab/fieldlab/internal/cplx"
)

// CompileError reports a structural problem in a lesson spec, with the
// CUE source position when one is available.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileLesson parses a CUE value into a Lesson.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The CUE value should be the lesson struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`lesson: basics: { ... }`)
//	l, err := CompileLesson(v.LookupPath(cue.ParsePath("lesson.basics")))
func CompileLesson(v cue.Value) (*Lesson, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	l := &Lesson{}

	// Lesson name comes from the struct label (the path selector).
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		l.Name = labels[len(labels)-1].String()
	}

	// Parse title (required).
	titleVal := v.LookupPath(cue.ParsePath("title"))
	if !titleVal.Exists() {
		return nil, &CompileError{
			Field:   "title",
			Message: "title is required",
			Pos:     v.Pos(),
		}
	}
	title, err := titleVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	l.Title = title

	// Parse exercises (required, at least one).
	exercisesVal := v.LookupPath(cue.ParsePath("exercises"))
	if !exercisesVal.Exists() {
		return nil, &CompileError{
			Field:   "exercises",
			Message: "exercises list is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := exercisesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		ex, exErr := parseExercise(iter.Value())
		if exErr != nil {
			return nil, exErr
		}
		l.Exercises = append(l.Exercises, ex)
	}
	if len(l.Exercises) == 0 {
		return nil, &CompileError{
			Field:   "exercises",
			Message: "at least one exercise is required",
			Pos:     exercisesVal.Pos(),
		}
	}

	return l, nil
}

// parseExercise parses a single exercise struct.
func parseExercise(v cue.Value) (Exercise, error) {
	var ex Exercise

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return ex, &CompileError{Field: "name", Message: "exercise name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return ex, formatCUEError(err)
	}
	ex.Name = name

	exprVal := v.LookupPath(cue.ParsePath("expr"))
	if !exprVal.Exists() {
		return ex, &CompileError{Field: "expr", Message: "exercise expr is required", Pos: v.Pos()}
	}
	expr, err := exprVal.String()
	if err != nil {
		return ex, formatCUEError(err)
	}
	ex.Expr = expr

	wantVal := v.LookupPath(cue.ParsePath("want"))
	if wantVal.Exists() {
		want, wantErr := parseComplex(wantVal)
		if wantErr != nil {
			return ex, wantErr
		}
		ex.Want = &want
	}

	wantErrVal := v.LookupPath(cue.ParsePath("wantError"))
	if wantErrVal.Exists() {
		code, codeErr := wantErrVal.String()
		if codeErr != nil {
			return ex, formatCUEError(codeErr)
		}
		ex.WantError = code
	}

	tolVal := v.LookupPath(cue.ParsePath("tolerance"))
	if tolVal.Exists() {
		tol, tolErr := tolVal.Float64()
		if tolErr != nil {
			return ex, formatCUEError(tolErr)
		}
		ex.Tolerance = tol
	}

	return ex, nil
}

// parseComplex parses a {re, im} struct.
func parseComplex(v cue.Value) (cplx.Complex, error) {
	var c cplx.Complex

	reVal := v.LookupPath(cue.ParsePath("re"))
	if !reVal.Exists() {
		return c, &CompileError{Field: "want.re", Message: "re is required", Pos: v.Pos()}
	}
	re, err := reVal.Float64()
	if err != nil {
		return c, formatCUEError(err)
	}
	c.Re = re

	imVal := v.LookupPath(cue.ParsePath("im"))
	if !imVal.Exists() {
		return c, &CompileError{Field: "want.im", Message: "im is required", Pos: v.Pos()}
	}
	im, err := imVal.Float64()
	if err != nil {
		return c, formatCUEError(err)
	}
	c.Im = im

	return c, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	return &CompileError{
		Field:   "cue",
		Message: first.Error(),
		Pos:     first.Position(),
	}
}
