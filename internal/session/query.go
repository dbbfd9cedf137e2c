package session

import (
	"fmt"
	"strings"
)

// Filter selects a subset of a session's evaluations.
//
// Compile turns it into parameterized SQL. Values are never
// interpolated into the query text, and every compiled query carries
// an ORDER BY with a deterministic tiebreaker so repeated reads return
// identical row order.
type Filter struct {
	// SessionToken is required.
	SessionToken string

	// InputContains, when set, matches evaluations whose input
	// contains the substring.
	InputContains string

	// ErrorsOnly restricts to evaluations that failed with a domain
	// error.
	ErrorsOnly bool

	// MinSeq/MaxSeq bound the sequence range when nonzero.
	MinSeq int64
	MaxSeq int64
}

// Compile converts the filter to parameterized SQL.
// Returns (sql, params, error).
func (f Filter) Compile() (string, []any, error) {
	if f.SessionToken == "" {
		return "", nil, fmt.Errorf("filter requires a session token")
	}
	if f.MinSeq < 0 || f.MaxSeq < 0 {
		return "", nil, fmt.Errorf("sequence bounds must be non-negative")
	}
	if f.MaxSeq != 0 && f.MinSeq > f.MaxSeq {
		return "", nil, fmt.Errorf("min seq %d exceeds max seq %d", f.MinSeq, f.MaxSeq)
	}

	conds := []string{"session_token = ?"}
	params := []any{f.SessionToken}

	if f.InputContains != "" {
		conds = append(conds, "instr(input, ?) > 0")
		params = append(params, f.InputContains)
	}
	if f.ErrorsOnly {
		conds = append(conds, "error_code IS NOT NULL")
	}
	if f.MinSeq > 0 {
		conds = append(conds, "seq >= ?")
		params = append(params, f.MinSeq)
	}
	if f.MaxSeq > 0 {
		conds = append(conds, "seq <= ?")
		params = append(params, f.MaxSeq)
	}

	query := fmt.Sprintf(`
		SELECT session_token, seq, input, re, im, error_code
		FROM evaluations
		WHERE %s
		ORDER BY seq ASC, id ASC
	`, strings.Join(conds, " AND "))

	return query, params, nil
}
