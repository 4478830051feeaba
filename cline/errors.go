package cline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for cline invocations. Match with errors.Is.
var (
	// ErrNotFound indicates the cline binary could not be located via the
	// configured override, PATH, or any well-known install location.
	ErrNotFound = errors.New("cline executable not found")

	// ErrLaunch indicates the subprocess failed to start.
	ErrLaunch = errors.New("cline failed to start")

	// ErrEmptyOutput indicates the process produced no output at all.
	ErrEmptyOutput = errors.New("no output captured from cline")

	// ErrNoStructuredData indicates output was captured but contained no
	// parseable JSON objects.
	ErrNoStructuredData = errors.New("no valid JSON objects found in output")

	// ErrNoTerminalEvent indicates JSON events were found but none carried
	// the final answer.
	ErrNoTerminalEvent = errors.New("no final answer found in output")

	// ErrPayloadDecode indicates the terminal event was found but its
	// embedded payload was malformed or missing the response field.
	ErrPayloadDecode = errors.New("terminal event payload could not be decoded")

	// ErrTimeout indicates the wall-clock ceiling elapsed before a terminal
	// event appeared.
	ErrTimeout = errors.New("cline timed out")
)

// Error wraps invocation errors with context.
type Error struct {
	Op        string // Operation that failed ("ask", "locate")
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("cline %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new invocation error.
func NewError(op string, err error, retryable bool) *Error {
	return &Error{
		Op:        op,
		Err:       err,
		Retryable: retryable,
	}
}

// IsRetryable checks if an error is likely transient and worth retrying.
func IsRetryable(err error) bool {
	var clErr *Error
	if errors.As(err, &clErr) {
		return clErr.Retryable
	}
	return errors.Is(err, ErrTimeout)
}

// maxRawOutputLength bounds raw output echoed into diagnostics. Large
// enough that error-relevant content is not lost, small enough to keep
// errors readable.
const maxRawOutputLength = 8 * 1024

// sanitizeOutput prepares captured output for inclusion in error messages.
func sanitizeOutput(out string) string {
	out = strings.TrimSpace(out)
	if len(out) > maxRawOutputLength {
		out = out[:maxRawOutputLength] + "... (truncated)"
	}
	return out
}
