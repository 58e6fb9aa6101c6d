package httpclient

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.UserAgent != "sypnna" {
		t.Errorf("expected default user agent, got %q", cfg.UserAgent)
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Timeout: 10 * time.Second, UserAgent: "custom"}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.UserAgent != "custom" {
		t.Errorf("expected user agent preserved, got %q", cfg.UserAgent)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := (&Config{Timeout: 10 * time.Second}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&Config{Timeout: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}
	for _, base := range []string{"api.supadata.ai", "ftp://example.com", "https://"} {
		if err := (&Config{Timeout: time.Second, BaseURL: base}).Validate(); err == nil {
			t.Errorf("expected error for base url %q", base)
		}
	}
	if err := (&Config{Timeout: time.Second, BaseURL: "https://api.assemblyai.com/v2"}).Validate(); err != nil {
		t.Errorf("unexpected error for valid base url: %v", err)
	}
}

func TestClassifyStatusCode_Success(t *testing.T) {
	for _, code := range []int{200, 201, 204} {
		if err := ClassifyStatusCode(code, nil); err != nil {
			t.Errorf("expected nil for %d, got %v", code, err)
		}
	}
}

func TestError_Message(t *testing.T) {
	e := ClassifyStatusCode(502, []byte("bad gateway"))
	if e.Error() != "httpclient: server (HTTP 502): HTTP 502" {
		t.Errorf("unexpected message %q", e.Error())
	}
	if ErrorCode(99).String() != "unknown" {
		t.Error("expected unknown for out-of-range code")
	}
}
