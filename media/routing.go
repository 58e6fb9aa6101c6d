package media

import (
	"context"
	"io"
	"net/url"
	"strings"

	apperrors "github.com/kbukum/sypnna/errors"
)

// RoutingLocator sends video-host URLs to an extractor and everything else
// to a direct locator.
type RoutingLocator struct {
	hosts     []string
	extractor Locator
	direct    Locator
}

// NewRoutingLocator creates a RoutingLocator. A nil extractor routes every
// URL to direct.
func NewRoutingLocator(hosts []string, extractor, direct Locator) *RoutingLocator {
	normalized := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h = strings.Trim(strings.ToLower(strings.TrimSpace(h)), "."); h != "" {
			normalized = append(normalized, h)
		}
	}
	return &RoutingLocator{hosts: normalized, extractor: extractor, direct: direct}
}

// Locate picks a locator by host and delegates.
func (r *RoutingLocator) Locate(ctx context.Context, sourceURL string) (io.ReadCloser, error) {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Hostname() == "" {
		return nil, apperrors.UnsupportedSource(sourceURL, "unparseable url")
	}
	if r.extractor != nil && r.matches(u.Hostname()) {
		return r.extractor.Locate(ctx, sourceURL)
	}
	return r.direct.Locate(ctx, sourceURL)
}

// UsesExtractor reports whether sourceURL would be routed to the extractor.
func (r *RoutingLocator) UsesExtractor(sourceURL string) bool {
	u, err := url.Parse(sourceURL)
	return err == nil && r.extractor != nil && r.matches(u.Hostname())
}

func (r *RoutingLocator) matches(host string) bool {
	host = strings.ToLower(host)
	for _, h := range r.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// NewLocator builds the configured locator chain.
func NewLocator(cfg Config) (*RoutingLocator, *ExtractorLocator, error) {
	direct, err := NewHTTPLocator()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Extractor.Enabled {
		return NewRoutingLocator(nil, nil, direct), nil, nil
	}
	extractor := NewExtractorLocator(cfg.Extractor)
	return NewRoutingLocator(cfg.Extractor.Hosts, extractor, direct), extractor, nil
}
