package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted demo run.
// Scenarios execute a sequence of evaluations and assert on the
// resulting trace.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario demonstrates.
	Description string `yaml:"description"`

	// Steps contains the evaluations in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace.
	// Supported types: trace_contains, trace_order, trace_count.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// SessionToken is an optional fixed token for deterministic runs.
	// Defaults to "demo-session" so golden files stay stable.
	SessionToken string `yaml:"session_token,omitempty"`
}

// Step is one evaluation with an optional expected outcome.
type Step struct {
	// Eval is the expression to evaluate.
	Eval string `yaml:"eval"`

	// Expect is the expected value. Nil means no value check.
	Expect *ExpectValue `yaml:"expect,omitempty"`

	// ExpectError is the expected domain error code.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// ExpectValue is an expected rectangular value with optional tolerance.
type ExpectValue struct {
	Re        float64 `yaml:"re"`
	Im        float64 `yaml:"im"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Assertion validates the trace after all steps ran.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Input is the expression text (trace_contains, trace_count).
	Input string `yaml:"input,omitempty"`

	// Inputs is the expected order of expressions (trace_order).
	Inputs []string `yaml:"inputs,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
)

// DefaultSessionToken keeps golden files stable when a scenario does
// not pick its own token.
const DefaultSessionToken = "demo-session"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "step:" vs "steps:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Eval == "" {
			return fmt.Errorf("steps[%d]: eval is required", i)
		}
		if step.Expect != nil && step.ExpectError != "" {
			return fmt.Errorf("steps[%d]: expect and expect_error are mutually exclusive", i)
		}
		if step.Expect != nil && step.Expect.Tolerance < 0 {
			return fmt.Errorf("steps[%d]: tolerance must be non-negative", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Input == "" {
			return fmt.Errorf("assertions[%d]: input is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Inputs) == 0 {
			return fmt.Errorf("assertions[%d]: inputs list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Input == "" {
			return fmt.Errorf("assertions[%d]: input is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
