package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/fieldlab/fieldlab/internal/canon"
)

// snapshot converts a result to a map for canonical serialization.
func snapshot(name string, result *Result) map[string]any {
	trace := make([]any, len(result.Trace))
	for i, ev := range result.Trace {
		event := map[string]any{
			"seq":   ev.Seq,
			"input": ev.Input,
		}
		if ev.ErrorCode != "" {
			event["error_code"] = ev.ErrorCode
		} else {
			event["re"] = ev.Re
			event["im"] = ev.Im
		}
		trace[i] = event
	}

	return map[string]any{
		"scenario_name": name,
		"trace":         trace,
	}
}

// RunWithGolden executes a scenario and compares its trace against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	traceJSON, err := canon.Marshal(snapshot(scenario.Name, result))
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return result, nil
}
