package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/okian/matchscore/internal/domain/types"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Generation or query failure
	ExitCommandError = 2 // Command error (bad flags, bad offsets, unreadable config)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter renders command results as text, JSON or YAML.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// Results writes query results. Text prints one "(differential, offset)"
// tuple per line, JSON one object per line, YAML a single sequence.
func (f *OutputFormatter) Results(results []types.ScoreResult) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
		}
		return nil
	case "yaml":
		return f.yaml(results)
	default:
		for _, r := range results {
			if _, err := fmt.Fprintf(f.Writer, "(%d, %d)\n", r.Differential, r.Offset); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
		}
		return nil
	}
}

// Summary writes a timeline summary. Text output groups digits the way
// printer's locale does.
func (f *OutputFormatter) Summary(s types.TimelineSummary, printer *message.Printer) error {
	switch f.Format {
	case "json":
		if err := json.NewEncoder(f.Writer).Encode(s); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
		return nil
	case "yaml":
		return f.yaml(s)
	}

	lines := []struct {
		format string
		args   []any
	}{
		{"match:        %s\n", []any{s.MatchID}},
		{"stamps:       %d\n", []any{s.Stamps}},
		{"last offset:  %d\n", []any{s.LastOffset}},
		{"final score:  %d - %d\n", []any{s.Home, s.Away}},
		{"differential: %d\n", []any{s.Differential}},
		{"seed:         %d\n", []any{s.Seed}},
	}
	for _, l := range lines {
		if _, err := printer.Fprintf(f.Writer, l.format, l.args...); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}

func (f *OutputFormatter) yaml(v any) error {
	enc := yaml.NewEncoder(f.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
