package process_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/kbukum/sypnna/process"
)

func TestStart_ReadsToEOF(t *testing.T) {
	s, err := process.Start(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "printf 'chunk-1 '; printf 'chunk-2'"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	data, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if string(data) != "chunk-1 chunk-2" {
		t.Fatalf("unexpected output %q", data)
	}
	if err := s.Close(); err != nil {
		t.Errorf("expected clean close, got %v", err)
	}
}

func TestStart_NonZeroExitSurfacesOnRead(t *testing.T) {
	s, err := process.Start(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "printf partial; echo 'ERROR: Unsupported URL' >&2; exit 1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	data, err := io.ReadAll(s)
	if string(data) != "partial" {
		t.Errorf("expected partial output, got %q", data)
	}
	exitErr, ok := process.AsExitError(err)
	if !ok {
		t.Fatalf("expected ExitError from read, got %v", err)
	}
	if exitErr.ExitCode != 1 || process.LastLine(exitErr.Stderr) != "ERROR: Unsupported URL" {
		t.Errorf("unexpected exit error %+v", exitErr)
	}
}

func TestStart_CloseBeforeEOFStopsProcess(t *testing.T) {
	s, err := process.Start(context.Background(), process.Command{
		Binary:      "sh",
		Args:        []string{"-c", "printf x; sleep 10"},
		GracePeriod: 200 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf := make([]byte, 1)
	if _, err := io.ReadFull(s, buf); err != nil {
		t.Fatalf("read: %v", err)
	}

	start := time.Now()
	if err := s.Close(); err != nil {
		t.Errorf("expected nil error on early close, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("close took too long")
	}
}

func TestStart_NotFound(t *testing.T) {
	_, err := process.Start(context.Background(), process.Command{Binary: "definitely-not-a-real-binary-xyz"})
	if !errors.Is(err, process.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
