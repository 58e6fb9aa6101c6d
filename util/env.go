package util

import (
	"os"
	"strings"
)

// LookupFunc reads one environment variable. os.LookupEnv is the default.
type LookupFunc func(string) (string, bool)

var envNameReplacer = strings.NewReplacer("-", "_", ".", "_", " ", "_")

// EnvVarName joins parts into an upper-case variable name:
// EnvVarName("assemblyai", "api_key") is "ASSEMBLYAI_API_KEY".
func EnvVarName(parts ...string) string {
	return strings.ToUpper(envNameReplacer.Replace(strings.Join(parts, "_")))
}

// LookupSecret reads name through lookup and cleans the value. A variable
// that is unset or blank after cleaning reports false.
func LookupSecret(lookup LookupFunc, name string) (string, bool) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(name)
	v = SanitizeEnvValue(v)
	return v, ok && v != ""
}

// SanitizeEnvValue trims whitespace and one pair of matching surrounding
// quotes. Values pasted into a .env file often keep their quotes.
func SanitizeEnvValue(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}

// Coalesce returns the first non-zero value.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
