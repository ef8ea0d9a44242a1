package roon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// Runner executes one controller invocation and returns its standard output.
// A non-nil error is returned when the process fails to start or exits non-zero.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// Config holds the configuration for controller execution.
type Config struct {
	// Path is the controller binary.
	// Default: "roon" (searches PATH)
	Path string

	// Timeout bounds a single invocation.
	// Default: 10 seconds
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Path:    "roon",
		Timeout: 10 * time.Second,
	}
}

// execCommand is swapped out by tests.
var execCommand = exec.CommandContext

// ExecRunner runs the controller as a one-shot subprocess via os/exec.
type ExecRunner struct {
	config Config
	logger *zap.Logger
}

// NewExecRunner creates a runner for the given configuration.
func NewExecRunner(config Config, logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{
		config: config,
		logger: logger,
	}
}

// Run spawns the controller with args and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := execCommand(ctx, r.config.Path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(start)

	exitCode := 0
	if err != nil {
		exitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
	}

	r.logger.Debug("controller invocation complete",
		zap.Strings("args", args),
		zap.Duration("duration", duration),
		zap.Int("exit_code", exitCode),
		zap.Int("stdout_size", stdout.Len()),
		zap.Int("stderr_size", stderr.Len()),
	)

	if err != nil {
		var timeout time.Duration
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s: %w", r.config.Timeout, ctx.Err())
			exitCode = -1
			timeout = r.config.Timeout
		}
		return nil, &CommandError{
			Path:     r.config.Path,
			Timeout:  timeout,
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Stdout:   stdout.String(),
			Err:      err,
		}
	}

	return stdout.Bytes(), nil
}
