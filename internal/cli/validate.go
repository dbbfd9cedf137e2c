package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldlab/fieldlab/internal/lesson"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool                     `json:"valid"`
	Lessons int                      `json:"lessons"`
	Errors  []lesson.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <lessons-dir>",
		Short: "Validate lesson specs without running them",
		Long: `Validate CUE lesson specs without running their exercises.

Performs syntax checking, schema validation, and consistency checks.
Faster than run for development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateLessons(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidateLessons(opts *RootOptions, lessonsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	// Collect all problems in one pass so a broken lesson doesn't hide
	// the next one.
	loadResult, loadErrors := lesson.LoadDir(lessonsDir, lesson.LoadModeCollectAll)

	// Directory-level failures (missing dir, no files) end the command.
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *lesson.LoadError
		if errors.As(loadErrors[0], &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Error())
		}
		_ = formatter.Error("E001", loadErrors[0].Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load lessons", loadErrors[0])
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, lessonsDir)

	var validationErrors []lesson.ValidationError
	for _, err := range loadErrors {
		validationErrors = append(validationErrors, loadErrorToValidation(err))
	}
	for _, l := range loadResult.Lessons {
		formatter.VerboseLog("Validating lesson: %s", l.Name)
		validationErrors = append(validationErrors, lesson.Validate(l)...)
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, len(loadResult.Lessons), validationErrors)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Lessons: len(loadResult.Lessons)})
	}
	fmt.Fprintf(formatter.Writer, "✓ %d lesson(s) valid\n", len(loadResult.Lessons))
	return nil
}

// loadErrorToValidation converts a load or compile failure into a
// validation error row.
func loadErrorToValidation(err error) lesson.ValidationError {
	var loadErr *lesson.LoadError
	if errors.As(err, &loadErr) {
		return lesson.ValidationError{Field: "load", Message: loadErr.Message, Code: loadErr.Code}
	}
	var compileErr *lesson.CompileError
	if errors.As(err, &compileErr) {
		return lesson.ValidationError{Field: compileErr.Field, Message: compileErr.Message, Code: lesson.ErrCodeCompile}
	}
	return lesson.ValidationError{Field: "load", Message: err.Error(), Code: "E001"}
}

// outputValidationErrors outputs validation errors and signals failure.
func outputValidationErrors(formatter *OutputFormatter, lessons int, errs []lesson.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Lessons: lessons, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
