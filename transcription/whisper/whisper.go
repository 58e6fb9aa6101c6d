// Package whisper implements a speech provider that sends staged media to an
// OpenAI-compatible audio transcription endpoint.
package whisper

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/httpclient"
	"github.com/kbukum/sypnna/transcription"
)

const (
	// ProviderName is the registered name for the Whisper provider.
	ProviderName = "whisper"

	defaultModel   = openai.Whisper1
	defaultTimeout = 120 * time.Second

	// fallbackExt is used when the detected format is not one the endpoint
	// accepts by name; the service decodes by content.
	fallbackExt = ".mp3"
)

// supportedExts are the file extensions the transcription endpoint accepts.
var supportedExts = map[string]bool{
	".flac": true, ".m4a": true, ".mp3": true, ".mp4": true, ".mpeg": true,
	".mpga": true, ".oga": true, ".ogg": true, ".wav": true, ".webm": true,
}

// extAliases maps detected extensions onto an accepted one for the same
// container.
var extAliases = map[string]string{
	".ogv":  ".ogg",
	".opus": ".ogg",
	".weba": ".webm",
	".mkv":  ".webm",
	".m4v":  ".mp4",
	".wave": ".wav",
}

// Provider implements transcription.SpeechProvider.
type Provider struct {
	client   *openai.Client
	model    string
	language string
}

var _ transcription.SpeechProvider = (*Provider)(nil)

// NewProvider creates a Whisper provider. cfg.BaseURL, when set, is the API
// root including the version segment, e.g. http://localhost:8000/v1.
func NewProvider(cfg transcription.ProviderConfig, apiKey string) (*Provider, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc, err := httpclient.New(httpclient.Config{Timeout: timeout})
	if err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = hc.Unwrap()

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Provider{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    model,
		language: cfg.Language,
	}, nil
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

// TranscribeMedia uploads the staged file and returns the recognized text.
// The upload is named after the detected format since the endpoint rejects
// unknown extensions.
func (p *Provider) TranscribeMedia(ctx context.Context, media transcription.StagedMedia) (string, error) {
	f, err := os.Open(media.Path)
	if err != nil {
		return "", mapError(err)
	}
	defer f.Close()

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		FilePath: UploadName(media),
		Reader:   f,
		Language: p.language,
	})
	if err != nil {
		return "", mapError(err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", apperrors.TranscriptUnavailable("No speech was recognized in this media.").
			WithDetail("provider", ProviderName)
	}
	return text, nil
}

// UploadName returns the multipart file name for media: "audio" plus an
// extension the endpoint accepts.
func UploadName(media transcription.StagedMedia) string {
	ext := strings.ToLower(media.Extension)
	if alias, ok := extAliases[ext]; ok {
		ext = alias
	}
	if !supportedExts[ext] {
		ext = fallbackExt
	}
	return "audio" + ext
}

func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperrors.ProviderHTTP(ProviderName, apiErr.HTTPStatusCode, apiErr.Message, nil).WithCause(err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperrors.ProviderHTTP(ProviderName, reqErr.HTTPStatusCode, "", nil).WithCause(err)
	}
	return apperrors.ProviderHTTP(ProviderName, 0, "", nil).WithCause(err)
}
