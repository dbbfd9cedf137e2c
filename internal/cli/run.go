package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldlab/fieldlab/internal/lesson"
)

// RunResult holds the outcome of running a lesson directory.
type RunResult struct {
	Reports []lesson.Report `json:"reports"`
	Passed  int             `json:"passed"`
	Failed  int             `json:"failed"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <lessons-dir>",
		Short: "Run all lessons in a directory",
		Long: `Load CUE lessons from a directory and run every exercise.

Each exercise's expression is evaluated and compared against its
expected value or expected error code.

Exit codes:
  0 - All exercises passed
  1 - One or more exercises failed
  2 - Command error (directory not found, broken lesson spec, etc.)

Examples:
  fieldlab run ./lessons
  fieldlab run ./lessons --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLessons(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runLessons(opts *RootOptions, lessonsDir string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	slog.Debug("loading lessons", "dir", lessonsDir)
	loadResult, loadErrors := lesson.LoadDir(lessonsDir, lesson.LoadModeFailFast)
	if len(loadErrors) > 0 {
		return WrapExitError(ExitCommandError, "failed to load lessons", loadErrors[0])
	}
	slog.Debug("lessons loaded", "count", len(loadResult.Lessons))

	// Reject semantically broken lessons before running anything.
	for _, l := range loadResult.Lessons {
		if errs := lesson.Validate(l); len(errs) > 0 {
			return WrapExitError(ExitCommandError,
				fmt.Sprintf("lesson %s is invalid", l.Name), errs[0])
		}
	}

	result := RunResult{Reports: make([]lesson.Report, 0, len(loadResult.Lessons))}
	for _, l := range loadResult.Lessons {
		report := lesson.Run(l)
		result.Reports = append(result.Reports, report)
		result.Passed += report.Passed
		result.Failed += report.Failed
		slog.Debug("lesson finished", "lesson", l.Name, "passed", report.Passed, "failed", report.Failed)
	}

	return outputRunResult(opts, result, cmd)
}

// outputRunResult prints the run summary and sets the exit code.
func outputRunResult(opts *RootOptions, result RunResult, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		for _, report := range result.Reports {
			fmt.Fprintf(w, "%s (%s)\n", report.Title, report.Lesson)
			for _, outcome := range report.Outcomes {
				mark := "✓"
				if !outcome.Pass {
					mark = "✗"
				}
				fmt.Fprintf(w, "  %s %s: %s\n", mark, outcome.Exercise, outcome.Expr)
				if !outcome.Pass {
					fmt.Fprintf(w, "      %s\n", outcome.Detail)
				}
			}
		}
		fmt.Fprintf(w, "\n%d passed, %d failed\n", result.Passed, result.Failed)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d exercise(s) failed", result.Failed))
	}
	return nil
}
