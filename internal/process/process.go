// pattern: Imperative Shell

package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"worktree/internal/logging"
)

// ErrStart is returned when a command could not be started at all
// (missing binary, bad working directory, permission denied).
var ErrStart = errors.New("process: failed to start")

// Runner executes a one-shot command in dir and returns its stdout.
// Implementations block until the process exits and its output is fully read.
type Runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// ExitError reports a command that started but exited non-zero.
type ExitError struct {
	Name   string
	Args   []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s %s: exit status %d", e.Name, strings.Join(e.Args, " "), e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Output is the production Runner backed by os/exec.
// Stdout is returned even when the command exits non-zero.
func Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStart, name, err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), &ExitError{
				Name:   name,
				Args:   args,
				Code:   exitErr.ExitCode(),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		return stdout.Bytes(), fmt.Errorf("%s: %w", name, err)
	}

	return stdout.Bytes(), nil
}

// Logged wraps run so every invocation is logged at debug level with its
// duration and outcome.
func Logged(run Runner, logger *logging.ScopedLogger) Runner {
	return func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		start := time.Now()
		out, err := run(ctx, dir, name, args...)
		if err != nil {
			logger.Debug("command failed", "cmd", name, "args", args, "dir", dir, "duration", time.Since(start), "error", err)
			return out, err
		}
		logger.Debug("command finished", "cmd", name, "args", args, "dir", dir, "duration", time.Since(start), "bytes", len(out))
		return out, nil
	}
}

// WithTimeout bounds every invocation of run by d. A zero or negative d
// returns run unchanged, so a hung process blocks its caller indefinitely.
func WithTimeout(run Runner, d time.Duration) Runner {
	if d <= 0 {
		return run
	}
	return func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return run(ctx, dir, name, args...)
	}
}
