package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// ErrNotFound is returned when the binary cannot be located.
var ErrNotFound = errors.New("process: binary not found")

// Run executes a subprocess and waits for it to complete.
// If the context is canceled, SIGTERM is sent first, then SIGKILL after GracePeriod.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	c, err := prepare(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var stdout bytes.Buffer
	stderr := &tailBuffer{limit: cmd.stderrLimit()}
	c.Stdout = &stdout
	c.Stderr = stderr

	start := time.Now()
	err = c.Run()
	duration := time.Since(start)

	if errors.Is(err, exec.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, cmd.Binary)
	}

	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: duration,
	}
	if err != nil {
		return result, exitError(ctx, cmd.Binary, result.ExitCode, result.Stderr, err)
	}
	return result, nil
}

// prepare builds an exec.Cmd running in its own process group so that
// cancellation signals reach the whole tree.
func prepare(ctx context.Context, cmd Command) (*exec.Cmd, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("process: binary is required")
	}
	if _, err := exec.LookPath(cmd.Binary); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, cmd.Binary)
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)
	if cmd.Stdin != nil {
		c.Stdin = cmd.Stdin
	}
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = cmd.gracePeriod()
	return c, nil
}

func exitError(ctx context.Context, binary string, code int, stderr []byte, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("process: killed by context: %w", ctx.Err())
	}
	return &ExitError{Binary: binary, ExitCode: code, Stderr: string(stderr), Err: err}
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	return append(os.Environ(), extra...)
}
