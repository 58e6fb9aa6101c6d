package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/sypnna/config"
	"github.com/kbukum/sypnna/observability"
)

func loadTestConfig(t *testing.T) *Config {
	t.Helper()
	var cfg Config
	err := config.LoadConfig(serviceName, &cfg,
		config.WithConfigFile("config.yml"),
		config.WithEnvFile(filepath.Join(t.TempDir(), "none.env")),
	)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return &cfg
}

func TestConfigFile(t *testing.T) {
	cfg := loadTestConfig(t)

	if cfg.Name != "sypnna" || cfg.Server.Port != 8080 {
		t.Errorf("unexpected service config: name=%q port=%d", cfg.Name, cfg.Server.Port)
	}
	if cfg.Transcription.Provider != "supadata" {
		t.Errorf("expected supadata provider, got %q", cfg.Transcription.Provider)
	}
	if cfg.Transcription.Poll.Interval != 5*time.Second || cfg.Transcription.Poll.Deadline != 60*time.Second {
		t.Errorf("unexpected poll bounds %+v", cfg.Transcription.Poll)
	}
	if got := cfg.Transcription.ProviderConfigFor("assemblyai").CredentialVar(); got != "ASSEMBLYAI_API_KEY" {
		t.Errorf("unexpected assemblyai credential var %q", got)
	}
	if !cfg.Media.Extractor.Enabled || len(cfg.Media.Extractor.Hosts) == 0 {
		t.Errorf("expected extractor enabled with hosts, got %+v", cfg.Media.Extractor)
	}
	if cfg.Media.MaxSizeBytes() != 200<<20 {
		t.Errorf("unexpected max size %d", cfg.Media.MaxSizeBytes())
	}
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("TRANSCRIPTION_PROVIDER", "assemblyai")
	t.Setenv("SERVER_PORT", "9090")

	cfg := loadTestConfig(t)
	if cfg.Transcription.Provider != "assemblyai" {
		t.Errorf("expected env override of provider, got %q", cfg.Transcription.Provider)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected env override of port, got %d", cfg.Server.Port)
	}
}

func TestConfigDefaultsWithoutFile(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Name != serviceName || cfg.Version == "" {
		t.Errorf("unexpected name/version %q %q", cfg.Name, cfg.Version)
	}
}

func TestConfigRejectsShortWriteTimeout(t *testing.T) {
	var cfg Config
	cfg.Server.WriteTimeout = 30
	cfg.ApplyDefaults()
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "write_timeout") {
		t.Fatalf("expected write timeout error, got %v", err)
	}
}

func TestProviderRegistry(t *testing.T) {
	registry := newProviderRegistry()
	for _, name := range []string{"supadata", "assemblyai", "whisper"} {
		if !registry.Has(name) {
			t.Errorf("expected %s to be registered", name)
		}
	}
}

func TestTelemetrySummary(t *testing.T) {
	if got := telemetrySummary(observability.Config{}); got.Details != "disabled" {
		t.Errorf("expected disabled telemetry, got %+v", got)
	}
	got := telemetrySummary(observability.Config{Enabled: true, Endpoint: "collector:4318", SampleRate: 0.5})
	if got.Name != "Telemetry" || got.Details != "collector:4318 sample_rate=0.5" {
		t.Errorf("unexpected summary %+v", got)
	}
}
