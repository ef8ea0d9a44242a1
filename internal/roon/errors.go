package roon

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandError represents a failed controller invocation: the process could
// not be started, timed out, or exited non-zero.
type CommandError struct {
	// Path is the controller binary ("" means roon)
	Path string
	// Args is the argument vector passed to the controller
	Args []string
	// ExitCode is the process exit code (-1 if it never ran to completion)
	ExitCode int
	// Stderr is the captured standard error
	Stderr string
	// Stdout is the captured standard output
	Stdout string
	// Timeout is the limit that was hit, zero unless the invocation timed out
	Timeout time.Duration
	// Underlying error if any
	Err error
}

// Message returns the controller's own explanation of the failure: trimmed
// stderr, else trimmed stdout, else the exit code. A timeout is reported as
// such regardless of any partial output.
func (e *CommandError) Message() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("timed out after %s", e.Timeout)
	}
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(e.Stdout); msg != "" {
		return msg
	}
	if e.Err != nil && e.ExitCode < 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.ExitCode)
}

func (e *CommandError) Error() string {
	path := e.Path
	if path == "" {
		path = "roon"
	}
	return fmt.Sprintf("%s %s failed: %s", path, strings.Join(e.Args, " "), e.Message())
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// DecodeError represents controller output that could not be parsed as the
// expected JSON document.
type DecodeError struct {
	// Args is the argument vector that produced the output
	Args []string
	// Output is the raw standard output
	Output string
	// Underlying error
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse output of roon %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err was caused by the controller binary being
// absent from PATH.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
