package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldlab/fieldlab/internal/cplx"
	"github.com/fieldlab/fieldlab/internal/session"
	"github.com/fieldlab/fieldlab/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory session store for
// isolation, under the scenario's fixed session token, so repeated
// runs produce identical traces.
//
// Execution:
//  1. Open an in-memory store and begin the session.
//  2. Evaluate each step in order, recording the outcome.
//  3. Check each step's expect clause against the outcome.
//  4. Evaluate trace assertions.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	st, err := session.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	token := scenario.SessionToken
	if token == "" {
		token = DefaultSessionToken
	}
	if err := st.Begin(ctx, token); err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}

	result := NewResult()
	clock := testutil.NewSeqClock()

	for i, step := range scenario.Steps {
		got, evalErr := st.RecordEval(ctx, token, step.Eval)
		if evalErr != nil && !cplx.IsDomainError(evalErr) {
			// Parse errors abort the scenario: the script itself is broken.
			return nil, fmt.Errorf("steps[%d]: %w", i, evalErr)
		}

		event := TraceEvent{Seq: clock.Next(), Input: step.Eval}
		if evalErr != nil {
			var de *cplx.DomainError
			errors.As(evalErr, &de)
			event.ErrorCode = string(de.Code)
		} else {
			event.Re = got.Re
			event.Im = got.Im
		}
		result.Trace = append(result.Trace, event)

		checkStep(result, i, step, got, evalErr)
	}

	for i, assertion := range scenario.Assertions {
		checkAssertion(result, i, assertion)
	}

	return result, nil
}

// checkStep validates a step's expect clause against the outcome.
func checkStep(result *Result, index int, step Step, got cplx.Complex, evalErr error) {
	switch {
	case step.ExpectError != "":
		var de *cplx.DomainError
		if evalErr == nil {
			result.AddError(fmt.Sprintf("steps[%d] %q: expected error %s, got %g%+gi",
				index, step.Eval, step.ExpectError, got.Re, got.Im))
		} else if !errors.As(evalErr, &de) || string(de.Code) != step.ExpectError {
			result.AddError(fmt.Sprintf("steps[%d] %q: expected error %s, got %v",
				index, step.Eval, step.ExpectError, evalErr))
		}

	case evalErr != nil:
		result.AddError(fmt.Sprintf("steps[%d] %q: unexpected error: %v", index, step.Eval, evalErr))

	case step.Expect != nil:
		tol := step.Expect.Tolerance
		want := cplx.Complex{Re: step.Expect.Re, Im: step.Expect.Im}
		if !cplx.ApproxEqual(got, want, tol) {
			result.AddError(fmt.Sprintf("steps[%d] %q: want %g%+gi, got %g%+gi",
				index, step.Eval, want.Re, want.Im, got.Re, got.Im))
		}
	}
}

// checkAssertion evaluates one trace assertion.
func checkAssertion(result *Result, index int, a Assertion) {
	switch a.Type {
	case AssertTraceContains:
		for _, ev := range result.Trace {
			if ev.Input == a.Input {
				return
			}
		}
		result.AddError(fmt.Sprintf("assertions[%d]: trace does not contain %q", index, a.Input))

	case AssertTraceCount:
		count := 0
		for _, ev := range result.Trace {
			if ev.Input == a.Input {
				count++
			}
		}
		if count != a.Count {
			result.AddError(fmt.Sprintf("assertions[%d]: %q appears %d times, want %d",
				index, a.Input, count, a.Count))
		}

	case AssertTraceOrder:
		pos := 0
		for _, ev := range result.Trace {
			if pos < len(a.Inputs) && ev.Input == a.Inputs[pos] {
				pos++
			}
		}
		if pos != len(a.Inputs) {
			result.AddError(fmt.Sprintf("assertions[%d]: trace order mismatch, matched %d of %d inputs",
				index, pos, len(a.Inputs)))
		}

	default:
		// validateScenario rejects unknown types before Run.
		result.AddError(fmt.Sprintf("assertions[%d]: unknown assertion type %q", index, a.Type))
	}
}

// RunFile loads and runs a scenario from a YAML file.
func RunFile(path string) (*Result, error) {
	scenario, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return Run(scenario)
}
