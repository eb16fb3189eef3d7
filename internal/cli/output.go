package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/wagnerlima/agent-memory/internal/storage"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution, including conflict/not-found documents
	ExitFailure      = 1 // Store failure or rejected value (bad status, I/O, corrupt db)
	ExitCommandError = 2 // Command error (bad arguments or flags)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
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

// ErrorDocument is written in place of a result when an operation hits an
// expected business failure.
type ErrorDocument struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// writeJSON writes v as one indented JSON document.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return WrapExitError(ExitFailure, "failed to write result", err)
	}
	return nil
}

// writeResult emits the outcome of one store operation. Conflicts and
// missing references become an error document with a zero exit code;
// every other failure is returned and terminates the invocation.
func writeResult(w io.Writer, v any, err error) error {
	switch {
	case err == nil:
		return writeJSON(w, v)
	case errors.Is(err, storage.ErrConflict):
		return writeJSON(w, ErrorDocument{Error: err.Error(), Kind: "conflict"})
	case errors.Is(err, storage.ErrNotFound):
		return writeJSON(w, ErrorDocument{Error: err.Error(), Kind: "not_found"})
	}
	return WrapExitError(ExitFailure, "operation failed", err)
}
