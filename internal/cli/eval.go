package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldlab/fieldlab/internal/cplx"
	"github.com/fieldlab/fieldlab/internal/eval"
	"github.com/fieldlab/fieldlab/internal/session"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Polar    bool
	Database string
	Session  string

	// TokenGen allows overriding the session token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	TokenGen session.TokenGenerator
}

// EvalResult holds the evaluation output.
type EvalResult struct {
	Input   string       `json:"input,omitempty"`
	Re      float64      `json:"re"`
	Im      float64      `json:"im"`
	Polar   *PolarResult `json:"polar,omitempty"`
	Session string       `json:"session,omitempty"`
	Seq     int64        `json:"seq,omitempty"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <expr>",
		Short: "Evaluate a complex expression",
		Long: `Evaluate a complex arithmetic expression and print the result.

Expressions support +, -, *, /, parentheses, imaginary literals (2i),
the imaginary unit i, and the calls inv(x), neg(x), and conj(x).

With --db, the evaluation is appended to a session log for later
trace and replay. Without --session a fresh session token is minted.

Examples:
  fieldlab eval "(1+2i) * (3-1i)"
  fieldlab eval "inv(2i)" --polar
  fieldlab eval "1 + i" --db ./lab.db --session demo`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Polar, "polar", false, "also print the polar form")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite session log (optional)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session token to record under (requires --db)")

	return cmd
}

func runEval(opts *EvalOptions, expr string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Session != "" && opts.Database == "" {
		return NewExitError(ExitCommandError, "--session requires --db")
	}

	if opts.Database != "" {
		return evalRecorded(opts, expr, formatter)
	}

	got, err := eval.Eval(expr)
	if err != nil {
		return outputEvalError(formatter, expr, err)
	}
	return outputEvalResult(formatter, EvalResult{Input: expr, Re: got.Re, Im: got.Im}, opts.Polar)
}

// evalRecorded evaluates through the session log so the result is
// replayable later.
func evalRecorded(opts *EvalOptions, expr string, formatter *OutputFormatter) error {
	ctx := context.Background()

	st, err := session.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	token := opts.Session
	if token == "" {
		gen := opts.TokenGen
		if gen == nil {
			gen = session.UUIDv7Generator{}
		}
		token = gen.Generate()
	}
	if err := st.Begin(ctx, token); err != nil {
		return WrapExitError(ExitCommandError, "failed to begin session", err)
	}

	formatter.VerboseLog("recording under session %s", token)

	got, evalErr := st.RecordEval(ctx, token, expr)
	if evalErr != nil {
		return outputEvalError(formatter, expr, evalErr)
	}

	seq, err := st.NextSeq(ctx, token)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read sequence", err)
	}

	result := EvalResult{Input: expr, Re: got.Re, Im: got.Im, Session: token, Seq: seq - 1}
	return outputEvalResult(formatter, result, opts.Polar)
}

// outputEvalResult prints a successful evaluation.
func outputEvalResult(formatter *OutputFormatter, result EvalResult, withPolar bool) error {
	if withPolar {
		p := cplx.ToPolar(cplx.Complex{Re: result.Re, Im: result.Im})
		result.Polar = &PolarResult{Angle: p.Angle, Radius: p.Radius}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, formatComplex(cplx.Complex{Re: result.Re, Im: result.Im}))
	if result.Polar != nil {
		fmt.Fprintf(formatter.Writer, "polar: angle=%g radius=%g\n", result.Polar.Angle, result.Polar.Radius)
	}
	if result.Session != "" {
		formatter.VerboseLog("recorded as seq %d in session %s", result.Seq, result.Session)
	}
	return nil
}

// outputEvalError prints an evaluation failure with the right exit code.
// Domain errors are evaluation failures (exit 1); malformed expressions
// are command errors (exit 2).
func outputEvalError(formatter *OutputFormatter, expr string, err error) error {
	var de *cplx.DomainError
	if errors.As(err, &de) {
		_ = formatter.Error(string(de.Code), de.Error(), nil)
		return NewExitError(ExitFailure, de.Error())
	}

	var pe *eval.ParseError
	if errors.As(err, &pe) {
		_ = formatter.Error("PARSE", pe.Error(), map[string]any{"expr": expr, "pos": pe.Pos})
		return NewExitError(ExitCommandError, pe.Error())
	}

	_ = formatter.Error("E000", err.Error(), nil)
	return WrapExitError(ExitCommandError, "evaluation failed", err)
}

// formatComplex renders a value in the a+bi form used across text output.
func formatComplex(c cplx.Complex) string {
	return fmt.Sprintf("%g%+gi", c.Re, c.Im)
}
