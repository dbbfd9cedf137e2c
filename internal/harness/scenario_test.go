package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: smoke
description: A single evaluation.
steps:
  - eval: "1 + i"
    expect: { re: 1, im: 1 }
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "smoke", scenario.Name)
	require.Len(t, scenario.Steps, 1)
	assert.Equal(t, "1 + i", scenario.Steps[0].Eval)
	require.NotNil(t, scenario.Steps[0].Expect)
	assert.Equal(t, 1.0, scenario.Steps[0].Expect.Re)
}

func TestLoadScenarioFileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarioUnknownField(t *testing.T) {
	// "step" instead of "steps" must be rejected, not silently dropped.
	path := writeScenario(t, `
name: typo
description: Typo in the steps key.
step:
  - eval: "1 + i"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarioValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: No name.
steps:
  - eval: "1"
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: nodesc
steps:
  - eval: "1"
`,
			wantErr: "description is required",
		},
		{
			name: "no steps",
			content: `
name: empty
description: No steps at all.
`,
			wantErr: "steps list is required",
		},
		{
			name: "step without eval",
			content: `
name: noeval
description: Step missing its expression.
steps:
  - expect: { re: 1, im: 0 }
`,
			wantErr: "steps[0]: eval is required",
		},
		{
			name: "expect and expect_error together",
			content: `
name: both
description: Conflicting expectations.
steps:
  - eval: "inv(0)"
    expect: { re: 0, im: 0 }
    expect_error: DOMAIN
`,
			wantErr: "mutually exclusive",
		},
		{
			name: "negative tolerance",
			content: `
name: negtol
description: Bad tolerance.
steps:
  - eval: "1"
    expect: { re: 1, im: 0, tolerance: -0.1 }
`,
			wantErr: "tolerance must be non-negative",
		},
		{
			name: "unknown assertion type",
			content: `
name: badassert
description: Unsupported assertion.
steps:
  - eval: "1"
assertions:
  - type: trace_reversed
    input: "1"
`,
			wantErr: `unknown assertion type "trace_reversed"`,
		},
		{
			name: "trace_contains without input",
			content: `
name: noinput
description: Assertion missing its input.
steps:
  - eval: "1"
assertions:
  - type: trace_contains
`,
			wantErr: "input is required for trace_contains",
		},
		{
			name: "trace_order without inputs",
			content: `
name: noinputs
description: Order assertion missing its inputs.
steps:
  - eval: "1"
assertions:
  - type: trace_order
`,
			wantErr: "inputs list is required for trace_order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
