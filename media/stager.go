package media

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/logger"
	"github.com/kbukum/sypnna/transcription"
)

const (
	stagedExt = ".media"

	// sniffLen is how much of the stream is kept for type detection.
	sniffLen = 3072
)

// Stager writes media streams to uniquely named files under one directory.
type Stager struct {
	dir     string
	maxSize int64
}

// NewStager creates a Stager. maxSize <= 0 means DefaultMaxSize.
func NewStager(dir string, maxSize int64) *Stager {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Stager{dir: dir, maxSize: maxSize}
}

// Dir returns the staging directory.
func (s *Stager) Dir() string { return s.dir }

// Stage copies r into a new file. On any failure the partial file is
// removed before returning.
func (s *Stager) Stage(ctx context.Context, r io.Reader) (*Handle, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, apperrors.StageWrite(s.dir, err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	path := filepath.Join(s.dir, id.String()+stagedExt)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, apperrors.StageWrite(path, err)
	}
	h := &Handle{path: path}

	src := &readTracker{r: io.LimitReader(r, s.maxSize+1)}
	head := &headWriter{limit: sniffLen}
	n, copyErr := io.Copy(io.MultiWriter(f, head), src)
	closeErr := f.Close()

	var stageErr error
	switch {
	case copyErr != nil && src.err != nil:
		stageErr = readFailure(src.err)
	case copyErr != nil:
		stageErr = apperrors.StageWrite(path, copyErr)
	case closeErr != nil:
		stageErr = apperrors.StageWrite(path, closeErr)
	case n > s.maxSize:
		stageErr = apperrors.UnsupportedSource("", "media exceeds size limit").WithDetail("max_bytes", s.maxSize)
	case n == 0:
		stageErr = apperrors.UnsupportedSource("", "source produced no media")
	}
	if stageErr != nil {
		_ = h.Release()
		return nil, stageErr
	}

	h.size = n
	kind := mimetype.Detect(head.buf)
	h.contentType, h.ext = kind.String(), kind.Extension()
	logger.Get("media").WithContext(ctx).Debug("media staged", logger.Fields(
		"path", path,
		logger.FieldBytes, n,
		"content_type", h.contentType,
	))
	return h, nil
}

func readFailure(err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.UnreachableSource("", 0).WithCause(err)
}

// readTracker remembers the first read error so it can be told apart from
// write errors after io.Copy.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return n, err
}

// headWriter keeps the first limit bytes written to it.
type headWriter struct {
	buf   []byte
	limit int
}

func (w *headWriter) Write(p []byte) (int, error) {
	if room := w.limit - len(w.buf); room > 0 {
		w.buf = append(w.buf, p[:min(room, len(p))]...)
	}
	return len(p), nil
}

// Handle is one staged file. Release deletes it exactly once.
type Handle struct {
	path        string
	size        int64
	contentType string
	ext         string

	once       sync.Once
	releaseErr error
}

// Path returns the file location.
func (h *Handle) Path() string { return h.path }

// Size returns the staged byte count.
func (h *Handle) Size() int64 { return h.size }

// ContentType returns the media type detected from the leading bytes.
func (h *Handle) ContentType() string { return h.contentType }

// Media describes the staged file to a provider.
func (h *Handle) Media() transcription.StagedMedia {
	return transcription.StagedMedia{
		Path:        h.path,
		SizeBytes:   h.size,
		ContentType: h.contentType,
		Extension:   h.ext,
	}
}

// Release removes the file. Later calls return the first result; a file
// that is already gone is not an error.
func (h *Handle) Release() error {
	h.once.Do(func() {
		err := os.Remove(h.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			h.releaseErr = err
		}
	})
	return h.releaseErr
}
