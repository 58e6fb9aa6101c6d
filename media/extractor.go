package media

import (
	"context"
	"errors"
	"io"
	"strings"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/process"
)

// defaultExtractorArgs select the best audio-only format and write it to
// stdout. The source URL is appended last.
var defaultExtractorArgs = []string{"-f", "bestaudio/best", "--no-playlist", "--quiet", "--no-warnings", "-o", "-"}

// stderr fragments that mean the host could not be reached, as opposed to
// the page having nothing to extract.
var networkFailureMarkers = []string{
	"HTTP Error",
	"Unable to download webpage",
	"timed out",
	"Temporary failure in name resolution",
	"Connection refused",
	"Network is unreachable",
}

// ExtractorLocator streams the audio track of a video page through yt-dlp.
type ExtractorLocator struct {
	cfg ExtractorConfig
}

// NewExtractorLocator creates an ExtractorLocator.
func NewExtractorLocator(cfg ExtractorConfig) *ExtractorLocator {
	if cfg.Binary == "" {
		cfg.Binary = defaultExtractor
	}
	if len(cfg.Args) == 0 {
		cfg.Args = defaultExtractorArgs
	}
	return &ExtractorLocator{cfg: cfg}
}

// Locate starts the extractor. Extraction failures that only show once the
// process exits are returned from the stream's Read.
func (l *ExtractorLocator) Locate(ctx context.Context, sourceURL string) (io.ReadCloser, error) {
	args := ExtractorArgs(l.cfg.Args, sourceURL)
	stream, err := process.Start(ctx, process.Command{
		Binary:      l.cfg.Binary,
		Args:        args,
		GracePeriod: l.cfg.GracePeriod,
	})
	if err != nil {
		if errors.Is(err, process.ErrNotFound) {
			return nil, apperrors.UnsupportedSource(sourceURL, "extractor not installed").WithCause(err)
		}
		return nil, apperrors.Internal(err)
	}
	return &extractorStream{Stream: stream, sourceURL: sourceURL}, nil
}

// Version runs the extractor with --version. It backs the health check.
func (l *ExtractorLocator) Version(ctx context.Context) (string, error) {
	res, err := process.Run(ctx, process.Command{
		Binary: l.cfg.Binary,
		Args:   []string{"--version"},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

type extractorStream struct {
	*process.Stream
	sourceURL string
}

func (s *extractorStream) Read(p []byte) (int, error) {
	n, err := s.Stream.Read(p)
	if err == nil || err == io.EOF {
		return n, err
	}
	return n, classifyExtractorError(s.sourceURL, err)
}

// Close stops the extractor. Exit errors were already reported by Read.
func (s *extractorStream) Close() error {
	_ = s.Stream.Close()
	return nil
}

// ExtractorArgs appends sourceURL after "--" so it is never read as an
// option.
func ExtractorArgs(base []string, sourceURL string) []string {
	args := make([]string, 0, len(base)+2)
	args = append(args, base...)
	return append(args, "--", sourceURL)
}

func classifyExtractorError(sourceURL string, err error) error {
	exitErr, ok := process.AsExitError(err)
	if !ok {
		return apperrors.UnreachableSource(sourceURL, 0).WithCause(err)
	}
	reason := process.LastLine(exitErr.Stderr)
	for _, marker := range networkFailureMarkers {
		if strings.Contains(exitErr.Stderr, marker) {
			return apperrors.UnreachableSource(sourceURL, 0).WithCause(err).WithDetail("reason", reason)
		}
	}
	return apperrors.UnsupportedSource(sourceURL, reason).WithCause(err)
}
