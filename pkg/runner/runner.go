// Package runner executes external tools with captured output and a
// deadline.
package runner

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds commands that do not set their own timeout
const DefaultTimeout = 5 * time.Minute

// Command describes one external process invocation
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Env     []string
	Timeout time.Duration
}

// Result holds the captured output of a finished command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes commands
type Runner struct {
	logger zerolog.Logger
}

// New creates a runner
func New() *Runner {
	return &Runner{logger: logging.GetLogger("runner")}
}

// Run executes cmd and waits for it. A nonzero exit returns
// ErrCommandExecute and a deadline expiry returns ErrCommandTimeout; both
// carry the captured output in the error details and in the Result.
func (r *Runner) Run(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Name == "" {
		return Result{}, errors.New(errors.ErrInvalidInput, "command name is required")
	}

	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logging.LogCommand(cmd.Name, cmd.Args)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		if _, err := os.Stat(cmd.Dir); os.IsNotExist(err) {
			return Result{}, errors.Newf(errors.ErrFileAccess,
				"working directory does not exist: %s", cmd.Dir)
		}
		c.Dir = cmd.Dir
	}
	c.Env = append(os.Environ(), cmd.Env...)
	// Give children a moment after cancellation before the pipes are abandoned
	c.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if stdout.Len() > 0 {
		r.logger.Debug().Str("command", cmd.Name).Str("output", res.Stdout).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		r.logger.Debug().Str("command", cmd.Name).Str("output", res.Stderr).Msg("Command stderr")
	}

	if ctx.Err() == context.DeadlineExceeded {
		r.logger.Error().
			Str("command", cmd.Name).
			Strs("args", cmd.Args).
			Dur("timeout", timeout).
			Msg("Command timed out")
		return res, errors.Newf(errors.ErrCommandTimeout, "command %s timed out after %s", cmd.Name, timeout).
			WithDetail("stderr", res.Stderr)
	}
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("command", cmd.Name).
			Strs("args", cmd.Args).
			Str("stdout", res.Stdout).
			Str("stderr", res.Stderr).
			Msg("Command execution failed")
		return res, errors.Wrapf(err, errors.ErrCommandExecute, "failed to execute command: %s", cmd.Name).
			WithDetail("stdout", res.Stdout).
			WithDetail("stderr", res.Stderr).
			WithDetail("exitCode", res.ExitCode)
	}

	return res, nil
}
