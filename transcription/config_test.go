package transcription

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "github.com/kbukum/sypnna/errors"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestProviderConfig_CredentialVar(t *testing.T) {
	tests := []struct {
		cfg  ProviderConfig
		want string
	}{
		{ProviderConfig{Name: "supadata"}, "SUPADATA_API_KEY"},
		{ProviderConfig{Name: "assemblyai"}, "ASSEMBLYAI_API_KEY"},
		{ProviderConfig{Name: "whisper"}, "OPENAI_API_KEY"},
		{ProviderConfig{Name: "whisper", CredentialEnv: "MY_KEY"}, "MY_KEY"},
		{ProviderConfig{Name: "custom"}, "CUSTOM_API_KEY"},
	}
	for _, tc := range tests {
		if got := tc.cfg.CredentialVar(); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.cfg.Name, tc.want, got)
		}
	}
}

func TestProviderConfig_Credential(t *testing.T) {
	cfg := ProviderConfig{Name: "supadata", LookupEnv: env(map[string]string{"SUPADATA_API_KEY": " sk-1 "})}
	key, err := cfg.Credential()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "sk-1" {
		t.Errorf("expected trimmed key, got %q", key)
	}

	quoted := ProviderConfig{Name: "supadata", LookupEnv: env(map[string]string{"SUPADATA_API_KEY": `"sk-2"`})}
	if key, _ := quoted.Credential(); key != "sk-2" {
		t.Errorf("expected quotes stripped, got %q", key)
	}

	for name, vars := range map[string]map[string]string{
		"absent":       {},
		"blank":        {"SUPADATA_API_KEY": "  "},
		"quoted empty": {"SUPADATA_API_KEY": `""`},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := ProviderConfig{Name: "supadata", LookupEnv: env(vars)}
			_, err := cfg.Credential()
			if !apperrors.HasCode(err, apperrors.ErrCodeMissingCredential) {
				t.Fatalf("expected MISSING_CREDENTIAL, got %v", err)
			}
			ae, _ := apperrors.AsAppError(err)
			if strings.Contains(ae.PublicMessage(), "SUPADATA_API_KEY") {
				t.Error("variable name must not reach the wire message")
			}
		})
	}
}

func TestConfig_DefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Provider != "supadata" {
		t.Errorf("expected default provider supadata, got %q", cfg.Provider)
	}
	if cfg.Poll.Interval != 5*time.Second || cfg.Poll.Deadline != 60*time.Second {
		t.Errorf("unexpected poll defaults %+v", cfg.Poll)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Poll.Interval = 2 * time.Minute
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when interval exceeds deadline")
	}
}

func TestConfig_ProviderConfigFor(t *testing.T) {
	cfg := Config{Providers: map[string]ProviderConfig{
		"assemblyai": {BaseURL: "https://api.assemblyai.com", ForwardURL: true},
	}}
	pc := cfg.ProviderConfigFor("assemblyai")
	if pc.Name != "assemblyai" || !pc.ForwardURL {
		t.Errorf("unexpected provider config %+v", pc)
	}
	if empty := cfg.ProviderConfigFor("supadata"); empty.Name != "supadata" {
		t.Errorf("expected name set for unconfigured provider, got %q", empty.Name)
	}
}

type directOnly struct{}

func (directOnly) Name() string                                            { return "d" }
func (directOnly) IsAvailable(context.Context) bool                        { return true }
func (directOnly) FetchTranscript(context.Context, string) (string, error) { return "", nil }

type speechOnly struct{}

func (speechOnly) Name() string                     { return "s" }
func (speechOnly) IsAvailable(context.Context) bool { return true }
func (speechOnly) TranscribeMedia(context.Context, StagedMedia) (string, error) {
	return "", nil
}

type bare struct{}

func (bare) Name() string                     { return "b" }
func (bare) IsAvailable(context.Context) bool { return true }

func TestModeOf(t *testing.T) {
	tests := []struct {
		p    Provider
		want Mode
	}{
		{directOnly{}, ModeDirect},
		{&scriptedJobs{}, ModeJob},
		{speechOnly{}, ModeSpeech},
		{bare{}, ModeUnknown},
	}
	for _, tc := range tests {
		if got := ModeOf(tc.p); got != tc.want {
			t.Errorf("ModeOf(%s) = %s, want %s", tc.p.Name(), got, tc.want)
		}
	}
}

func TestJobStatus_IsTerminal(t *testing.T) {
	for s, want := range map[JobStatus]bool{
		JobQueued: false, JobProcessing: false, JobCompleted: true, JobFailed: true,
	} {
		if s.IsTerminal() != want {
			t.Errorf("%s.IsTerminal() = %v", s, !want)
		}
	}
}
