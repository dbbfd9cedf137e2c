package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fieldlab/fieldlab/internal/cplx"
)

// Evaluation is one recorded workbench evaluation.
//
// Exactly one of (Result != nil) and (ErrorCode != "") holds for a
// valid record: an evaluation either produced a value or failed with a
// domain error. Parse failures are never recorded; there is nothing
// deterministic to replay.
type Evaluation struct {
	SessionToken string
	Seq          int64
	Input        string
	Result       *cplx.Complex
	ErrorCode    string
}

// Succeeded reports whether the evaluation produced a value.
func (e Evaluation) Succeeded() bool {
	return e.Result != nil
}

// WriteEvaluation appends an evaluation record to the session log.
// Uses ON CONFLICT DO NOTHING for idempotency: writing the same
// (session, seq) twice is silently ignored.
//
// The session referenced by SessionToken must exist (foreign key
// constraint).
func (s *Store) WriteEvaluation(ctx context.Context, ev Evaluation) error {
	if ev.Result != nil && ev.ErrorCode != "" {
		return fmt.Errorf("write evaluation: record has both result and error code")
	}
	if ev.Result == nil && ev.ErrorCode == "" {
		return fmt.Errorf("write evaluation: record has neither result nor error code")
	}

	var re, im sql.NullFloat64
	if ev.Result != nil {
		re = sql.NullFloat64{Float64: ev.Result.Re, Valid: true}
		im = sql.NullFloat64{Float64: ev.Result.Im, Valid: true}
	}
	var errCode sql.NullString
	if ev.ErrorCode != "" {
		errCode = sql.NullString{String: ev.ErrorCode, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations
		(session_token, seq, input, re, im, error_code)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_token, seq) DO NOTHING
	`,
		ev.SessionToken,
		ev.Seq,
		ev.Input,
		re,
		im,
		errCode,
	)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}

	return nil
}
