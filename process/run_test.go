package process_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/sypnna/process"
)

func TestRun_Stdout(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo $GREETING world"},
		Env:    []string{"GREETING=hello"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", result.ExitCode)
	}
	if out := strings.TrimSpace(string(result.Stdout)); out != "hello world" {
		t.Fatalf("expected 'hello world', got %q", out)
	}
}

func TestRun_Stdin(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "cat",
		Stdin:  strings.NewReader("from stdin"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result.Stdout) != "from stdin" {
		t.Fatalf("expected 'from stdin', got %q", result.Stdout)
	}
}

func TestRun_ExitError(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo first >&2; echo 'ERROR: no audio' >&2; exit 42"},
	})
	exitErr, ok := process.AsExitError(err)
	if !ok {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.ExitCode != 42 || result.ExitCode != 42 {
		t.Fatalf("expected exit code 42, got %d", exitErr.ExitCode)
	}
	if !strings.HasSuffix(exitErr.Error(), "ERROR: no audio") {
		t.Errorf("expected last stderr line in message, got %q", exitErr.Error())
	}
}

func TestRun_StderrLimitKeepsTail(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary:      "sh",
		Args:        []string{"-c", "printf 'aaaaaaaaaa' >&2; printf 'tail' >&2"},
		StderrLimit: 6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result.Stderr) != "aatail" {
		t.Fatalf("expected 'aatail', got %q", result.Stderr)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := process.Run(ctx, process.Command{
		Binary:      "sleep",
		Args:        []string{"10"},
		GracePeriod: 500 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error from context cancellation")
	}
	if _, ok := process.AsExitError(err); ok {
		t.Error("cancellation should not be reported as an exit error")
	}
	if result.Duration > 5*time.Second {
		t.Fatalf("process took too long to kill: %v", result.Duration)
	}
}

func TestRun_BinaryErrors(t *testing.T) {
	if _, err := process.Run(context.Background(), process.Command{}); err == nil {
		t.Fatal("expected error for empty binary")
	}
	_, err := process.Run(context.Background(), process.Command{Binary: "definitely-not-a-real-binary-xyz"})
	if !errors.Is(err, process.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLastLine(t *testing.T) {
	if got := process.LastLine("a\nb\n\n  "); got != "b" {
		t.Errorf("expected 'b', got %q", got)
	}
	if got := process.LastLine(""); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
