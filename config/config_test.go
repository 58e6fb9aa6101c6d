package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/sypnna/logger"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Server        struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
	Transcription struct {
		Provider string `mapstructure:"provider"`
	} `mapstructure:"transcription"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const sampleYAML = `
name: sypnna
environment: staging
server:
  port: 8080
transcription:
  provider: supadata
`

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service name propagated, got %q", cfg.Logging.ServiceName)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug log level in development, got %q", cfg.Logging.Level)
		}
	})

	t.Run("explicit level wins over debug", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Logging: logger.Config{Level: "warn"}}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "warn" {
			t.Errorf("expected warn, got %q", cfg.Logging.Level)
		}
	})

	t.Run("production keeps debug false and logs json", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: EnvProduction}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if !cfg.IsProduction() {
			t.Error("expected IsProduction")
		}
		if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
			t.Errorf("expected info/json, got %s/%s", cfg.Logging.Level, cfg.Logging.Format)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: "production"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", sampleYAML)

	var cfg testConfig
	if err := LoadConfig("sypnna", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "sypnna" {
		t.Errorf("expected name 'sypnna', got %q", cfg.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Transcription.Provider != "supadata" {
		t.Errorf("expected provider 'supadata', got %q", cfg.Transcription.Provider)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", sampleYAML)
	t.Setenv("TRANSCRIPTION_PROVIDER", "assemblyai")

	var cfg testConfig
	if err := LoadConfig("sypnna", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Transcription.Provider != "assemblyai" {
		t.Errorf("expected env override, got %q", cfg.Transcription.Provider)
	}
}

func TestLoadConfigEnvPrefix(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", sampleYAML)
	t.Setenv("SERVER_PORT", "1111")
	t.Setenv("SYPNNA_SERVER_PORT", "9090")

	var cfg testConfig
	if err := LoadConfig("sypnna", &cfg, WithConfigFile(path), WithEnvPrefix("SYPNNA")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected prefixed override 9090, got %d", cfg.Server.Port)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", sampleYAML)
	envPath := writeFile(t, dir, ".env", "SERVER_PORT=7070\n")
	t.Cleanup(func() { os.Unsetenv("SERVER_PORT") })

	var cfg testConfig
	if err := LoadConfig("sypnna", &cfg, WithConfigFile(path), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected port from .env, got %d", cfg.Server.Port)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigBrokenYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "name: [unclosed")

	var cfg testConfig
	if err := LoadConfig("sypnna", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadAppliesDefaultsAndValidates(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "environment: production\n")

	var cfg testConfig
	err := Load("sypnna", &cfg, WithConfigFile(path))
	if err == nil || !strings.Contains(err.Error(), "config.name is required") {
		t.Fatalf("expected validation error, got %v", err)
	}

	path = writeFile(t, t.TempDir(), "config.yml", sampleYAML)
	cfg = testConfig{}
	if err := Load("sypnna", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging defaults applied, got %q", cfg.Logging.Level)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/sypnna/config.yml": true,
		"./.env":                  true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("sypnna", LoaderConfig{})
	if files.ConfigFile != "./cmd/sypnna/config.yml" {
		t.Errorf("expected config file at ./cmd/sypnna/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected env file ./.env, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPathsWin(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{files: map[string]bool{"./config.yml": true}}}
	files := resolver.ResolveFiles("sypnna", LoaderConfig{ConfigFile: "/etc/sypnna.yml"})
	if files.ConfigFile != "/etc/sypnna.yml" {
		t.Errorf("expected explicit path, got %q", files.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("SYPNNA")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
	if lc.EnvPrefix != "SYPNNA" {
		t.Errorf("expected env prefix, got %q", lc.EnvPrefix)
	}
}
