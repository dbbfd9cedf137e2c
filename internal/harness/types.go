package harness

// TraceEvent is one recorded evaluation in a scenario trace.
type TraceEvent struct {
	Seq       int64   `json:"seq"`
	Input     string  `json:"input"`
	Re        float64 `json:"re,omitempty"`
	Im        float64 `json:"im,omitempty"`
	ErrorCode string  `json:"error_code,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expect clause matched and
	// every assertion held.
	Pass bool `json:"pass"`

	// Trace contains all evaluations in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages. Empty if Pass.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result to accumulate into.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError records a validation error and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
