package transcription

import (
	"fmt"
	"time"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/provider"
	"github.com/kbukum/sypnna/util"
)

// Default credential variables per backend.
var defaultCredentialEnv = map[string]string{
	"supadata":   "SUPADATA_API_KEY",
	"assemblyai": "ASSEMBLYAI_API_KEY",
	"whisper":    "OPENAI_API_KEY",
}

// ProviderConfig is everything a factory needs to build a provider for one
// request.
type ProviderConfig struct {
	Name          string        `yaml:"-" mapstructure:"-"`
	BaseURL       string        `yaml:"base_url" mapstructure:"base_url"`
	CredentialEnv string        `yaml:"credential_env" mapstructure:"credential_env"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Model         string        `yaml:"model" mapstructure:"model"`
	Language      string        `yaml:"language" mapstructure:"language"`
	ForwardURL    bool          `yaml:"forward_url" mapstructure:"forward_url"`

	// LookupEnv reads the credential. Defaults to os.LookupEnv.
	LookupEnv util.LookupFunc `yaml:"-" mapstructure:"-"`
}

// CredentialVar returns the environment variable holding the credential.
func (c ProviderConfig) CredentialVar() string {
	return util.Coalesce(c.CredentialEnv, defaultCredentialEnv[c.Name], util.EnvVarName(c.Name, "api_key"))
}

// Credential reads the credential at call time. Surrounding quotes are
// stripped; an absent or blank value is a MissingCredential error.
func (c ProviderConfig) Credential() (string, error) {
	name := c.CredentialVar()
	v, ok := util.LookupSecret(c.LookupEnv, name)
	if !ok {
		return "", apperrors.MissingCredential(c.Name, name)
	}
	return v, nil
}

// Config is the transcription section of the service config.
type Config struct {
	// Provider names the active backend.
	Provider  string                    `yaml:"provider" mapstructure:"provider"`
	Providers map[string]ProviderConfig `yaml:"providers" mapstructure:"providers"`
	Poll      PollConfig                `yaml:"poll" mapstructure:"poll"`
}

// PollConfig bounds the job poll loop.
type PollConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	Deadline time.Duration `yaml:"deadline" mapstructure:"deadline"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = "supadata"
	}
	if c.Poll.Interval <= 0 {
		c.Poll.Interval = DefaultPollInterval
	}
	if c.Poll.Deadline <= 0 {
		c.Poll.Deadline = DefaultPollDeadline
	}
}

// Validate checks the section.
func (c *Config) Validate() error {
	if c.Poll.Interval > c.Poll.Deadline {
		return fmt.Errorf("transcription.poll.interval (%s) must not exceed deadline (%s)", c.Poll.Interval, c.Poll.Deadline)
	}
	return nil
}

// ProviderConfigFor returns the config for name with Name set.
func (c *Config) ProviderConfigFor(name string) ProviderConfig {
	pc := c.Providers[name]
	pc.Name = name
	return pc
}

// Registry builds transcription providers by name.
type Registry = provider.Registry[Provider, ProviderConfig]

// Factory builds one transcription provider.
type Factory = provider.Factory[Provider, ProviderConfig]

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return provider.NewRegistry[Provider, ProviderConfig]()
}
