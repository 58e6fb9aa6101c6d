package process

import (
	"io"
	"time"
)

const (
	defaultGracePeriod = 5 * time.Second
	defaultStderrLimit = 16 << 10
)

// Command configures a subprocess to execute.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables (key=value). Merged with os.Environ.
	Env []string
	// Stdin provides input to the process. May be nil.
	Stdin io.Reader
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	// Defaults to 5 seconds if zero.
	GracePeriod time.Duration
	// StderrLimit caps how many trailing bytes of stderr are kept.
	// Defaults to 16KB.
	StderrLimit int
}

func (c Command) gracePeriod() time.Duration {
	if c.GracePeriod > 0 {
		return c.GracePeriod
	}
	return defaultGracePeriod
}

func (c Command) stderrLimit() int {
	if c.StderrLimit > 0 {
		return c.StderrLimit
	}
	return defaultStderrLimit
}
