package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAllStepsPass(t *testing.T) {
	scenario := &Scenario{
		Name:        "arith",
		Description: "Addition and multiplication.",
		Steps: []Step{
			{Eval: "(1+2i) + (3-1i)", Expect: &ExpectValue{Re: 4, Im: 1}},
			{Eval: "(1+2i) * (3-1i)", Expect: &ExpectValue{Re: 5, Im: 5}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 2)
	assert.Equal(t, TraceEvent{Seq: 1, Input: "(1+2i) + (3-1i)", Re: 4, Im: 1}, result.Trace[0])
	assert.Equal(t, TraceEvent{Seq: 2, Input: "(1+2i) * (3-1i)", Re: 5, Im: 5}, result.Trace[1])
}

func TestRunValueMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong",
		Description: "Deliberately wrong expectation.",
		Steps: []Step{
			{Eval: "1 + 1", Expect: &ExpectValue{Re: 3, Im: 0}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "want 3+0i, got 2+0i")
}

func TestRunExpectedDomainError(t *testing.T) {
	scenario := &Scenario{
		Name:        "zeroinv",
		Description: "Inverting zero raises a domain error.",
		Steps: []Step{
			{Eval: "inv(0+0i)", ExpectError: "DOMAIN"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, "DOMAIN", result.Trace[0].ErrorCode)
}

func TestRunUnexpectedDomainError(t *testing.T) {
	scenario := &Scenario{
		Name:        "surprise",
		Description: "A domain error where a value was expected.",
		Steps: []Step{
			{Eval: "1 / 0", Expect: &ExpectValue{Re: 1, Im: 0}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unexpected error")
	// The trace still records the failed evaluation.
	require.Len(t, result.Trace, 1)
	assert.Equal(t, "DOMAIN", result.Trace[0].ErrorCode)
}

func TestRunMissingExpectedError(t *testing.T) {
	scenario := &Scenario{
		Name:        "noerror",
		Description: "Expecting an error that never happens.",
		Steps: []Step{
			{Eval: "inv(1)", ExpectError: "DOMAIN"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected error DOMAIN")
}

func TestRunParseErrorAborts(t *testing.T) {
	scenario := &Scenario{
		Name:        "broken",
		Description: "A malformed expression aborts the whole scenario.",
		Steps: []Step{
			{Eval: "1 + "},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]")
}

func TestRunStepWithTolerance(t *testing.T) {
	scenario := &Scenario{
		Name:        "tol",
		Description: "Approximate expectation.",
		Steps: []Step{
			{Eval: "1 / 3", Expect: &ExpectValue{Re: 0.333333, Im: 0, Tolerance: 1e-4}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunAssertions(t *testing.T) {
	base := []Step{
		{Eval: "1 + i"},
		{Eval: "2 * i"},
		{Eval: "1 + i"},
	}

	tests := []struct {
		name      string
		assertion Assertion
		wantPass  bool
	}{
		{
			name:      "contains hit",
			assertion: Assertion{Type: AssertTraceContains, Input: "2 * i"},
			wantPass:  true,
		},
		{
			name:      "contains miss",
			assertion: Assertion{Type: AssertTraceContains, Input: "3 * i"},
			wantPass:  false,
		},
		{
			name:      "count match",
			assertion: Assertion{Type: AssertTraceCount, Input: "1 + i", Count: 2},
			wantPass:  true,
		},
		{
			name:      "count mismatch",
			assertion: Assertion{Type: AssertTraceCount, Input: "1 + i", Count: 1},
			wantPass:  false,
		},
		{
			name:      "order subsequence",
			assertion: Assertion{Type: AssertTraceOrder, Inputs: []string{"1 + i", "2 * i"}},
			wantPass:  true,
		},
		{
			name:      "order violated",
			assertion: Assertion{Type: AssertTraceOrder, Inputs: []string{"2 * i", "2 * i"}},
			wantPass:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := &Scenario{
				Name:        "asserts",
				Description: "Trace assertion checks.",
				Steps:       base,
				Assertions:  []Assertion{tt.assertion},
			}

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPass, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRunFile(t *testing.T) {
	result, err := RunFile("testdata/scenarios/complex_basics.yaml")
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Len(t, result.Trace, 3)
}

func TestRunSequenceNumbering(t *testing.T) {
	scenario := &Scenario{
		Name:        "seqs",
		Description: "Sequence numbers stay dense across error steps.",
		Steps: []Step{
			{Eval: "1 + i"},
			{Eval: "inv(0)", ExpectError: "DOMAIN"},
			{Eval: "2 * i"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	require.Len(t, result.Trace, 3)
	for i, ev := range result.Trace {
		assert.Equal(t, int64(i+1), ev.Seq)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/division_demo.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
}
