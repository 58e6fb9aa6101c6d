package media

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/httpclient"
)

// Locator resolves a source URL into a readable media stream. One attempt,
// no retries. The caller closes the stream.
type Locator interface {
	Locate(ctx context.Context, sourceURL string) (io.ReadCloser, error)
}

// HTTPLocator fetches a URL that points straight at a media file.
type HTTPLocator struct {
	client *httpclient.Client
}

// NewHTTPLocator creates an HTTPLocator.
func NewHTTPLocator() (*HTTPLocator, error) {
	client, err := httpclient.New(httpclient.Config{})
	if err != nil {
		return nil, err
	}
	return &HTTPLocator{client: client}, nil
}

// Locate opens the URL and checks that the response is media.
func (l *HTTPLocator) Locate(ctx context.Context, sourceURL string) (io.ReadCloser, error) {
	resp, err := l.client.DoStream(ctx, httpclient.Request{
		Method:  http.MethodGet,
		Path:    sourceURL,
		Headers: map[string]string{"Accept": "audio/*, video/*, application/octet-stream;q=0.5"},
	})
	if err != nil {
		return nil, apperrors.UnreachableSource(sourceURL, httpclient.StatusCode(err)).WithCause(err)
	}
	if !isMediaType(resp.ContentType) {
		_ = resp.Close()
		return nil, apperrors.UnsupportedSource(sourceURL, "response is not audio or video").
			WithDetail("content_type", resp.ContentType)
	}
	return &sourceStream{ReadCloser: resp.Body, sourceURL: sourceURL}, nil
}

func isMediaType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(mt, "audio/"), strings.HasPrefix(mt, "video/"):
		return true
	case mt == "application/octet-stream", mt == "application/ogg":
		return true
	default:
		return false
	}
}

// sourceStream reports mid-transfer read failures as unreachable source.
type sourceStream struct {
	io.ReadCloser
	sourceURL string
}

func (s *sourceStream) Read(p []byte) (int, error) {
	n, err := s.ReadCloser.Read(p)
	if err != nil && err != io.EOF {
		return n, apperrors.UnreachableSource(s.sourceURL, 0).WithCause(err)
	}
	return n, err
}
