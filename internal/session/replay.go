package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldlab/fieldlab/internal/cplx"
	"github.com/fieldlab/fieldlab/internal/eval"
)

// Divergence describes one evaluation whose replayed outcome differs
// from the recorded outcome.
type Divergence struct {
	Seq      int64  `json:"seq"`
	Input    string `json:"input"`
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

// ReplayReport is the outcome of replaying a session log.
type ReplayReport struct {
	SessionToken string       `json:"session_token"`
	Evaluations  int          `json:"evaluations"`
	Divergences  []Divergence `json:"divergences,omitempty"`
}

// Deterministic reports whether the replay reproduced every recorded
// outcome exactly.
func (r ReplayReport) Deterministic() bool {
	return len(r.Divergences) == 0
}

// Replay re-parses and re-evaluates every recorded input for the
// session and compares outcomes bit-for-bit with the log.
//
// Float arithmetic over fixed inputs is deterministic, so a divergence
// means the log was edited or the evaluator's semantics changed since
// the session was recorded. Both are worth knowing before trusting a
// recorded demo.
func (s *Store) Replay(ctx context.Context, token string) (ReplayReport, error) {
	report := ReplayReport{SessionToken: token}

	exists, err := s.SessionExists(ctx, token)
	if err != nil {
		return report, fmt.Errorf("replay: %w", err)
	}
	if !exists {
		return report, fmt.Errorf("replay: unknown session %q", token)
	}

	evaluations, err := s.ReadSession(ctx, token)
	if err != nil {
		return report, fmt.Errorf("replay: %w", err)
	}
	report.Evaluations = len(evaluations)

	for _, ev := range evaluations {
		if d, diverged := replayOne(ev); diverged {
			report.Divergences = append(report.Divergences, d)
		}
	}

	return report, nil
}

// replayOne re-evaluates a single record and compares outcomes.
func replayOne(ev Evaluation) (Divergence, bool) {
	got, err := eval.Eval(ev.Input)

	switch {
	case err == nil && ev.Succeeded():
		if got == *ev.Result {
			return Divergence{}, false
		}
		return divergence(ev, formatValue(got)), true

	case err != nil && !ev.Succeeded():
		var de *cplx.DomainError
		if errors.As(err, &de) && string(de.Code) == ev.ErrorCode {
			return Divergence{}, false
		}
		return divergence(ev, fmt.Sprintf("error: %v", err)), true

	case err == nil:
		return divergence(ev, formatValue(got)), true

	default:
		return divergence(ev, fmt.Sprintf("error: %v", err)), true
	}
}

func divergence(ev Evaluation, replayed string) Divergence {
	return Divergence{
		Seq:      ev.Seq,
		Input:    ev.Input,
		Recorded: formatRecorded(ev),
		Replayed: replayed,
	}
}

func formatRecorded(ev Evaluation) string {
	if ev.Succeeded() {
		return formatValue(*ev.Result)
	}
	return "error code " + ev.ErrorCode
}

func formatValue(c cplx.Complex) string {
	return fmt.Sprintf("%g%+gi", c.Re, c.Im)
}
