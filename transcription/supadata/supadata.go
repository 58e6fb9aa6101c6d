// Package supadata implements a direct transcript provider backed by the
// SupaData transcript API.
package supadata

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/httpclient"
	"github.com/kbukum/sypnna/transcription"
)

const (
	// ProviderName is the registered name for the SupaData provider.
	ProviderName = "supadata"

	defaultBaseURL = "https://api.supadata.ai"
	transcriptPath = "/v1/transcript"
)

// Provider implements transcription.DirectProvider.
type Provider struct {
	client *httpclient.Client
}

var _ transcription.DirectProvider = (*Provider)(nil)

// NewProvider creates a SupaData provider authenticated with apiKey.
func NewProvider(cfg transcription.ProviderConfig, apiKey string) (*Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client, err := httpclient.New(httpclient.Config{
		BaseURL: baseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.HeaderCredential("x-api-key", apiKey),
	})
	if err != nil {
		return nil, err
	}
	return &Provider{client: client}, nil
}

// Factory builds a provider per request, reading the credential first.
func Factory() transcription.Factory {
	return func(cfg transcription.ProviderConfig) (transcription.Provider, error) {
		key, err := cfg.Credential()
		if err != nil {
			return nil, err
		}
		return NewProvider(cfg, key)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports true; the credential was checked at construction.
func (p *Provider) IsAvailable(ctx context.Context) bool { return true }

type transcriptResponse struct {
	Content json.RawMessage `json:"content"`
	Text    string          `json:"text"`
}

// FetchTranscript asks SupaData for a plain-text transcript, letting it pick
// between a native transcript and generating one.
func (p *Provider) FetchTranscript(ctx context.Context, sourceURL string) (string, error) {
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   transcriptPath,
		Query: map[string]string{
			"url":  sourceURL,
			"text": "true",
			"mode": "auto",
		},
	})
	if err != nil {
		return "", mapError(err)
	}

	var body transcriptResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return "", apperrors.ProviderMalformedResponse(ProviderName, resp.Body).WithCause(err)
	}
	text := contentText(body.Content)
	if text == "" {
		text = strings.TrimSpace(body.Text)
	}
	if text == "" {
		return "", apperrors.ProviderMalformedResponse(ProviderName, resp.Body)
	}
	return text, nil
}

// contentText accepts content as a string. With text=true that is the only
// shape SupaData returns; anything else counts as absent.
func contentText(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func mapError(err error) error {
	herr, ok := httpclient.AsError(err)
	if !ok || herr.StatusCode == 0 {
		return apperrors.ProviderHTTP(ProviderName, 0, "", nil).WithCause(err)
	}
	msg := httpclient.BodyMessage(herr.Body)
	if herr.StatusCode == http.StatusNotFound {
		return apperrors.TranscriptUnavailable(msg).WithDetail("provider", ProviderName)
	}
	return apperrors.ProviderHTTP(ProviderName, herr.StatusCode, msg, herr.Body)
}
