package whisper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/transcription"
)

func stageFile(t *testing.T) transcription.StagedMedia {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.media")
	if err := os.WriteFile(path, []byte("RIFFaudio"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return transcription.StagedMedia{Path: path, SizeBytes: 9, ContentType: "audio/wav", Extension: ".wav"}
}

func newTestProvider(t *testing.T, cfg transcription.ProviderConfig, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL + "/v1"
	p, err := NewProvider(cfg, "sk-openai")
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func TestTranscribeMedia(t *testing.T) {
	p := newTestProvider(t, transcription.ProviderConfig{Language: "en"}, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-openai" {
			t.Errorf("unexpected auth %q", r.Header.Get("Authorization"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("expected whisper-1, got %q", got)
		}
		if got := r.FormValue("language"); got != "en" {
			t.Errorf("expected language en, got %q", got)
		}
		f, fh, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		if fh.Filename != "audio.wav" {
			t.Errorf("expected upload named audio.wav, got %q", fh.Filename)
		}
		data, _ := io.ReadAll(f)
		if string(data) != "RIFFaudio" {
			t.Errorf("unexpected file body %q", data)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":" hello from whisper "}`))
	})

	text, err := p.TranscribeMedia(context.Background(), stageFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello from whisper" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestTranscribeMedia_EmptyText(t *testing.T) {
	p := newTestProvider(t, transcription.ProviderConfig{}, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":""}`))
	})
	_, err := p.TranscribeMedia(context.Background(), stageFile(t))
	if !apperrors.HasCode(err, apperrors.ErrCodeTranscriptUnavailable) {
		t.Fatalf("expected TRANSCRIPT_UNAVAILABLE, got %v", err)
	}
}

func TestTranscribeMedia_APIError(t *testing.T) {
	p := newTestProvider(t, transcription.ProviderConfig{}, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	})
	_, err := p.TranscribeMedia(context.Background(), stageFile(t))
	ae, ok := apperrors.AsAppError(err)
	if !ok || ae.Code != apperrors.ErrCodeProviderHTTP {
		t.Fatalf("expected PROVIDER_HTTP_ERROR, got %v", err)
	}
	if ae.Details["status"] != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %v", ae.Details["status"])
	}
	if ae.PublicMessage() != "Incorrect API key provided" {
		t.Errorf("unexpected public message %q", ae.PublicMessage())
	}
}

func TestTranscribeMedia_MissingFile(t *testing.T) {
	p := newTestProvider(t, transcription.ProviderConfig{}, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := p.TranscribeMedia(context.Background(), transcription.StagedMedia{Path: filepath.Join(t.TempDir(), "gone")})
	if !apperrors.HasCode(err, apperrors.ErrCodeProviderHTTP) {
		t.Fatalf("expected PROVIDER_HTTP_ERROR, got %v", err)
	}
}

func TestFactory(t *testing.T) {
	_, err := Factory()(transcription.ProviderConfig{
		Name:      ProviderName,
		LookupEnv: func(string) (string, bool) { return "", false },
	})
	if !apperrors.HasCode(err, apperrors.ErrCodeMissingCredential) {
		t.Fatalf("expected MISSING_CREDENTIAL, got %v", err)
	}

	p, err := Factory()(transcription.ProviderConfig{
		Name:      ProviderName,
		LookupEnv: func(k string) (string, bool) { return "k", k == "OPENAI_API_KEY" },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transcription.ModeOf(p) != transcription.ModeSpeech {
		t.Errorf("expected speech mode, got %s", transcription.ModeOf(p))
	}
	if p.(*Provider).model != "whisper-1" {
		t.Errorf("expected default model, got %q", p.(*Provider).model)
	}
}

func TestUploadName(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".wav", "audio.wav"},
		{".m4a", "audio.m4a"},
		{".WEBM", "audio.webm"},
		{".weba", "audio.webm"},
		{".ogv", "audio.ogg"},
		{".txt", "audio.mp3"},
		{"", "audio.mp3"},
	}
	for _, tc := range tests {
		t.Run(tc.want+tc.ext, func(t *testing.T) {
			got := UploadName(transcription.StagedMedia{Path: "/tmp/0192.media", Extension: tc.ext})
			if got != tc.want {
				t.Errorf("UploadName(%q) = %q, want %q", tc.ext, got, tc.want)
			}
			if !supportedExts[filepath.Ext(got)] {
				t.Errorf("%q has an extension the endpoint rejects", got)
			}
		})
	}
}

func TestTranscribeMedia_StagedNameNotSent(t *testing.T) {
	var filename string
	p := newTestProvider(t, transcription.ProviderConfig{}, func(w http.ResponseWriter, r *http.Request) {
		if _, fh, err := r.FormFile("file"); err == nil {
			filename = fh.Filename
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"ok"}`))
	})
	m := stageFile(t)
	m.Extension = ""
	if _, err := p.TranscribeMedia(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filename != "audio.mp3" {
		t.Errorf("expected fallback upload name audio.mp3, got %q", filename)
	}
}

func TestTranscribeMedia_ClientSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	p := newTestProvider(t, transcription.ProviderConfig{}, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"ok"}`))
	})
	if _, err := p.TranscribeMedia(context.Background(), stageFile(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range exporter.GetSpans() {
		if s.SpanKind == trace.SpanKindClient && s.Name == "http POST" {
			return
		}
	}
	t.Errorf("expected an http POST client span, got %d spans", len(exporter.GetSpans()))
}
