package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldlab/fieldlab/internal/session"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database   string
	Session    string
	ErrorsOnly bool
	Contains   string
	MinSeq     int64
	MaxSeq     int64
}

// TraceRow is one evaluation in the trace output.
type TraceRow struct {
	Seq       int64   `json:"seq"`
	Input     string  `json:"input"`
	Re        float64 `json:"re,omitempty"`
	Im        float64 `json:"im,omitempty"`
	ErrorCode string  `json:"error_code,omitempty"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	SessionToken string     `json:"session_token"`
	Rows         []TraceRow `json:"rows"`
	Total        int        `json:"total"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print recorded evaluations for a session",
		Long: `Print the recorded evaluation history of a session.

Rows come back in recorded order. Filters narrow the history without
changing the order.

Examples:
  fieldlab trace --db ./lab.db --session demo
  fieldlab trace --db ./lab.db --session demo --errors-only
  fieldlab trace --db ./lab.db --session demo --contains "inv" --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite session log (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session token to trace (required)")
	_ = cmd.MarkFlagRequired("session")
	cmd.Flags().BoolVar(&opts.ErrorsOnly, "errors-only", false, "only show evaluations that failed")
	cmd.Flags().StringVar(&opts.Contains, "contains", "", "only show inputs containing this substring")
	cmd.Flags().Int64Var(&opts.MinSeq, "min-seq", 0, "lowest sequence number to include")
	cmd.Flags().Int64Var(&opts.MaxSeq, "max-seq", 0, "highest sequence number to include (0 = no bound)")

	return cmd
}

func runSessionTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := session.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	exists, err := st.SessionExists(ctx, opts.Session)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to check session", err)
	}
	if !exists {
		return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", opts.Session))
	}

	evals, err := st.ReadFiltered(ctx, session.Filter{
		SessionToken:  opts.Session,
		InputContains: opts.Contains,
		ErrorsOnly:    opts.ErrorsOnly,
		MinSeq:        opts.MinSeq,
		MaxSeq:        opts.MaxSeq,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	result := TraceResult{
		SessionToken: opts.Session,
		Rows:         make([]TraceRow, 0, len(evals)),
		Total:        len(evals),
	}
	for _, ev := range evals {
		row := TraceRow{Seq: ev.Seq, Input: ev.Input}
		if ev.Succeeded() {
			row.Re = ev.Result.Re
			row.Im = ev.Result.Im
		} else {
			row.ErrorCode = ev.ErrorCode
		}
		result.Rows = append(result.Rows, row)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputTraceText(formatter, result)
}

// outputTraceText renders the trace as a readable timeline.
func outputTraceText(formatter *OutputFormatter, result TraceResult) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Session: %s\n", result.SessionToken)
	if len(result.Rows) == 0 {
		fmt.Fprintln(w, "  (no evaluations)")
		return nil
	}

	for _, row := range result.Rows {
		if row.ErrorCode != "" {
			fmt.Fprintf(w, "  [%d] %s => error %s\n", row.Seq, row.Input, row.ErrorCode)
		} else {
			fmt.Fprintf(w, "  [%d] %s => %g%+gi\n", row.Seq, row.Input, row.Re, row.Im)
		}
	}
	fmt.Fprintf(w, "\n%d evaluation(s)\n", result.Total)
	return nil
}
