package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fieldlab/fieldlab/internal/cplx"
)

// ReadSession returns all evaluations for a session token.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC.
//
// Returns an empty slice (not nil) if no records exist for the token.
func (s *Store) ReadSession(ctx context.Context, token string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_token, seq, input, re, im, error_code
		FROM evaluations
		WHERE session_token = ?
		ORDER BY seq ASC, id ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	return collectEvaluations(rows)
}

// ReadFiltered returns evaluations matching the filter, compiled to
// parameterized SQL by Compile. Ordering is deterministic.
func (s *Store) ReadFiltered(ctx context.Context, f Filter) ([]Evaluation, error) {
	query, params, err := f.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	return collectEvaluations(rows)
}

func collectEvaluations(rows *sql.Rows) ([]Evaluation, error) {
	evaluations := []Evaluation{}
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}

	return evaluations, nil
}

func scanEvaluation(rows *sql.Rows) (Evaluation, error) {
	var ev Evaluation
	var re, im sql.NullFloat64
	var errCode sql.NullString

	if err := rows.Scan(&ev.SessionToken, &ev.Seq, &ev.Input, &re, &im, &errCode); err != nil {
		return Evaluation{}, fmt.Errorf("scan evaluation: %w", err)
	}

	if re.Valid && im.Valid {
		ev.Result = &cplx.Complex{Re: re.Float64, Im: im.Float64}
	}
	if errCode.Valid {
		ev.ErrorCode = errCode.String
	}

	return ev, nil
}

// ListSessions returns all session tokens in creation order.
// UUIDv7 tokens are time-sortable, so token order is creation order;
// created_at is the tiebreaker for externally supplied tokens.
func (s *Store) ListSessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token FROM sessions
		ORDER BY created_at ASC, token ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return tokens, nil
}
