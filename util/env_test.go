package util

import "testing"

func TestSanitizeEnvValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips double quotes", `"sd_live_abc"`, "sd_live_abc"},
		{"strips single quotes", `'sd_live_abc'`, "sd_live_abc"},
		{"trims whitespace", "  sd_live_abc\n", "sd_live_abc"},
		{"strips quotes and trims", `  " sd_live_abc "  `, "sd_live_abc"},
		{"empty quotes", `""`, ""},
		{"empty string", "", ""},
		{"mismatched quotes", `"value'`, `"value'`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeEnvValue(tc.input); got != tc.want {
				t.Errorf("SanitizeEnvValue(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestLookupSecret(t *testing.T) {
	env := map[string]string{
		"SUPADATA_API_KEY":   `"sd_live_abc"`,
		"ASSEMBLYAI_API_KEY": "  ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	if v, ok := LookupSecret(lookup, "SUPADATA_API_KEY"); !ok || v != "sd_live_abc" {
		t.Errorf("expected cleaned value, got %q %v", v, ok)
	}
	if _, ok := LookupSecret(lookup, "ASSEMBLYAI_API_KEY"); ok {
		t.Error("blank value should count as missing")
	}
	if _, ok := LookupSecret(lookup, "OPENAI_API_KEY"); ok {
		t.Error("unset value should count as missing")
	}
}

func TestLookupSecret_DefaultsToProcessEnv(t *testing.T) {
	t.Setenv("SYPNNA_TEST_SECRET", "'value'")
	if v, ok := LookupSecret(nil, "SYPNNA_TEST_SECRET"); !ok || v != "value" {
		t.Errorf("expected value from process env, got %q %v", v, ok)
	}
}

func TestEnvVarName(t *testing.T) {
	tests := map[string][]string{
		"ASSEMBLYAI_API_KEY":  {"assemblyai", "api_key"},
		"MY_PROVIDER_API_KEY": {"my-provider", "api", "key"},
		"SERVER_PORT":         {"server.port"},
	}
	for want, parts := range tests {
		if got := EnvVarName(parts...); got != want {
			t.Errorf("EnvVarName(%v) = %q, want %q", parts, got, want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "ASSEMBLYAI_API_KEY", "X_API_KEY"); got != "ASSEMBLYAI_API_KEY" {
		t.Errorf("expected first non-empty value, got %q", got)
	}
	if got := Coalesce(0, 0, 42); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
