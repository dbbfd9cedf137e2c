package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldlab/fieldlab/internal/cplx"
	"github.com/fieldlab/fieldlab/internal/eval"
)

// NextSeq returns the next sequence number for a session: one past the
// highest recorded seq, or 1 for a fresh session. Appending from a
// single writer keeps the sequence gap-free.
func (s *Store) NextSeq(ctx context.Context, token string) (int64, error) {
	var max int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM evaluations
		WHERE session_token = ?
	`, token).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return max + 1, nil
}

// RecordEval evaluates input and appends the outcome to the session log.
//
// Successful values and domain errors are both recorded; the original
// evaluation error (if any) is returned alongside so callers surface
// it to the user. Parse errors are returned without recording anything:
// a malformed expression has no result to replay.
func (s *Store) RecordEval(ctx context.Context, token, input string) (cplx.Complex, error) {
	result, evalErr := eval.Eval(input)

	if evalErr != nil {
		var de *cplx.DomainError
		if !errors.As(evalErr, &de) {
			// Parse error: nothing deterministic to record.
			return cplx.Complex{}, evalErr
		}

		seq, err := s.NextSeq(ctx, token)
		if err != nil {
			return cplx.Complex{}, err
		}
		if err := s.WriteEvaluation(ctx, Evaluation{
			SessionToken: token,
			Seq:          seq,
			Input:        input,
			ErrorCode:    string(de.Code),
		}); err != nil {
			return cplx.Complex{}, err
		}
		return cplx.Complex{}, evalErr
	}

	seq, err := s.NextSeq(ctx, token)
	if err != nil {
		return cplx.Complex{}, err
	}
	if err := s.WriteEvaluation(ctx, Evaluation{
		SessionToken: token,
		Seq:          seq,
		Input:        input,
		Result:       &result,
	}); err != nil {
		return cplx.Complex{}, err
	}

	return result, nil
}
