// Package assemblyai implements an asynchronous job provider backed by the
// AssemblyAI v2 API: upload media, create a transcript job, poll it.
package assemblyai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/httpclient"
	"github.com/kbukum/sypnna/transcription"
)

const (
	// ProviderName is the registered name for the AssemblyAI provider.
	ProviderName = "assemblyai"

	defaultBaseURL = "https://api.assemblyai.com"
	uploadPath     = "/v2/upload"
	transcriptPath = "/v2/transcript"
)

// Provider implements transcription.JobProvider.
type Provider struct {
	client     *httpclient.Client
	language   string
	forwardURL bool
}

var _ transcription.JobProvider = (*Provider)(nil)

// NewProvider creates an AssemblyAI provider authenticated with apiKey.
func NewProvider(cfg transcription.ProviderConfig, apiKey string) (*Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client, err := httpclient.New(httpclient.Config{
		BaseURL: baseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.HeaderCredential("authorization", apiKey),
	})
	if err != nil {
		return nil, err
	}
	return &Provider{
		client:     client,
		language:   cfg.Language,
		forwardURL: cfg.ForwardURL,
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

// ForwardsURL reports whether source URLs go straight into CreateJob.
func (p *Provider) ForwardsURL() bool { return p.forwardURL }

// Upload streams the staged file as the raw request body and returns the
// upload URL AssemblyAI assigns to it.
func (p *Provider) Upload(ctx context.Context, media transcription.StagedMedia) (string, error) {
	f, err := os.Open(media.Path)
	if err != nil {
		return "", apperrors.UploadFailed(ProviderName, fmt.Errorf("open staged media: %w", err))
	}
	defer f.Close()

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method:        http.MethodPost,
		Path:          uploadPath,
		Body:          f,
		ContentLength: media.SizeBytes,
	})
	if err != nil {
		return "", apperrors.UploadFailed(ProviderName, err).WithDetails(failureDetails(err))
	}

	var body struct {
		UploadURL string `json:"upload_url"`
	}
	if err := resp.DecodeJSON(&body); err != nil || strings.TrimSpace(body.UploadURL) == "" {
		return "", apperrors.UploadFailed(ProviderName, fmt.Errorf("response lacks upload_url")).
			WithDetail("body", string(resp.Body))
	}
	return body.UploadURL, nil
}

type createRequest struct {
	AudioURL     string `json:"audio_url"`
	LanguageCode string `json:"language_code,omitempty"`
}

type transcriptResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// CreateJob starts a transcript job for audioURL.
func (p *Provider) CreateJob(ctx context.Context, audioURL string) (*transcription.Job, error) {
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   transcriptPath,
		Body:   createRequest{AudioURL: audioURL, LanguageCode: p.language},
	})
	if err != nil {
		return nil, apperrors.JobCreationFailed(ProviderName, err).WithDetails(failureDetails(err))
	}

	var body transcriptResponse
	if err := resp.DecodeJSON(&body); err != nil || body.ID == "" {
		return nil, apperrors.JobCreationFailed(ProviderName, fmt.Errorf("response lacks id")).
			WithDetail("body", string(resp.Body))
	}
	return toJob(body), nil
}

// JobStatus fetches the current state of jobID.
func (p *Provider) JobStatus(ctx context.Context, jobID string) (*transcription.Job, error) {
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   transcriptPath + "/" + url.PathEscape(jobID),
	})
	if err != nil {
		return nil, apperrors.StatusQueryFailed(ProviderName, jobID, err).WithDetails(failureDetails(err))
	}

	var body transcriptResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, apperrors.StatusQueryFailed(ProviderName, jobID, err).WithDetail("body", string(resp.Body))
	}
	if body.ID == "" {
		body.ID = jobID
	}
	return toJob(body), nil
}

func toJob(r transcriptResponse) *transcription.Job {
	return &transcription.Job{
		ID:           r.ID,
		Status:       mapStatus(r.Status),
		ResultText:   r.Text,
		ErrorMessage: r.Error,
	}
}

// mapStatus folds AssemblyAI states into the job lifecycle. Unrecognized
// states count as still processing so the deadline bounds them.
func mapStatus(s string) transcription.JobStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "queued", "":
		return transcription.JobQueued
	case "completed":
		return transcription.JobCompleted
	case "error":
		return transcription.JobFailed
	default:
		return transcription.JobProcessing
	}
}

func failureDetails(err error) map[string]any {
	herr, ok := httpclient.AsError(err)
	if !ok || herr.StatusCode == 0 {
		return nil
	}
	details := map[string]any{"status": herr.StatusCode}
	if msg := httpclient.BodyMessage(herr.Body); msg != "" {
		details["provider_message"] = msg
	}
	return details
}
