package process

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
)

// Stream is a running subprocess whose stdout is read incrementally.
// Reading to the end waits for the process; a non-zero exit surfaces as
// the final Read error instead of io.EOF.
type Stream struct {
	cmd    *exec.Cmd
	binary string
	stdout io.ReadCloser
	stderr *tailBuffer
	ctx    context.Context
	cancel context.CancelFunc

	waitOnce sync.Once
	waitErr  error
}

// Start launches cmd and returns its stdout as a Stream. The caller must
// Close the stream; closing before EOF terminates the process.
func Start(ctx context.Context, cmd Command) (*Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	c, err := prepare(ctx, cmd)
	if err != nil {
		cancel()
		return nil, err
	}

	stdout, err := c.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	stderr := &tailBuffer{limit: cmd.stderrLimit()}
	c.Stderr = stderr

	if err := c.Start(); err != nil {
		cancel()
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Stream{
		cmd:    c,
		binary: cmd.Binary,
		stdout: stdout,
		stderr: stderr,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Read reads from the process stdout.
func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.stdout.Read(p)
	if errors.Is(err, io.EOF) {
		if werr := s.wait(); werr != nil {
			return n, werr
		}
	}
	return n, err
}

// Close stops the process if it is still running and releases its
// resources. It returns the exit error, if any.
func (s *Stream) Close() error {
	s.cancel()
	err := s.wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stderr returns the tail of the process stderr.
func (s *Stream) Stderr() string {
	return string(s.stderr.Bytes())
}

func (s *Stream) wait() error {
	s.waitOnce.Do(func() {
		err := s.cmd.Wait()
		if err != nil {
			s.waitErr = exitError(s.ctx, s.binary, s.cmd.ProcessState.ExitCode(), s.stderr.Bytes(), err)
		}
	})
	return s.waitErr
}
