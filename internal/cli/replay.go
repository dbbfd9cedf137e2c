package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldlab/fieldlab/internal/session"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
}

// ReplayResult holds the overall replay outcome.
type ReplayResult struct {
	Reports          []session.ReplayReport `json:"reports"`
	TotalSessions    int                    `json:"total_sessions"`
	AllDeterministic bool                   `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded sessions and verify determinism",
		Long: `Re-evaluate every recorded input and compare outcomes with the log.

A session is deterministic when each replayed evaluation reproduces
the recorded value, or the recorded domain error, exactly. Divergence
means the log was edited or the evaluator changed.

Exit codes:
  0 - All sessions replay deterministically
  1 - Divergences detected
  2 - Command error (database not found, etc.)

Examples:
  fieldlab replay --db ./lab.db
  fieldlab replay --db ./lab.db --session demo
  fieldlab replay --db ./lab.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite session log (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "replay specific session only")

	return cmd
}

func runSessionReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := session.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var tokens []string
	if opts.Session != "" {
		exists, err := st.SessionExists(ctx, opts.Session)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to check session", err)
		}
		if !exists {
			return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", opts.Session))
		}
		tokens = []string{opts.Session}
	} else {
		tokens, err = st.ListSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if len(tokens) == 0 {
		if formatter.Format == "json" {
			return formatter.Success(ReplayResult{
				Reports:          []session.ReplayReport{},
				AllDeterministic: true,
			})
		}
		fmt.Fprintln(formatter.Writer, "No sessions found in database.")
		return nil
	}

	result := ReplayResult{
		Reports:          make([]session.ReplayReport, 0, len(tokens)),
		TotalSessions:    len(tokens),
		AllDeterministic: true,
	}

	for _, token := range tokens {
		formatter.VerboseLog("replaying session %s", token)
		report, err := st.Replay(ctx, token)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", token), err)
		}
		result.Reports = append(result.Reports, report)
		if !report.Deterministic() {
			result.AllDeterministic = false
		}
	}

	return outputReplayResult(formatter, result)
}

// outputReplayResult prints the replay outcome and sets the exit code.
func outputReplayResult(formatter *OutputFormatter, result ReplayResult) error {
	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		for _, report := range result.Reports {
			status := "deterministic"
			if !report.Deterministic() {
				status = fmt.Sprintf("%d divergence(s)", len(report.Divergences))
			}
			fmt.Fprintf(w, "%s: %d evaluation(s), %s\n", report.SessionToken, report.Evaluations, status)
			for _, d := range report.Divergences {
				fmt.Fprintf(w, "  [%d] %s\n", d.Seq, d.Input)
				fmt.Fprintf(w, "      recorded: %s\n", d.Recorded)
				fmt.Fprintf(w, "      replayed: %s\n", d.Replayed)
			}
		}
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "replay diverged from the recorded log")
	}
	return nil
}
