package httpclient

import (
	"fmt"
	"net/url"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "sypnna"
)

// Config configures a Client. One Client talks to one backend.
type Config struct {
	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth is sent with every request unless the request carries its own.
	Auth *Credential `yaml:"-" mapstructure:"-"`

	Headers   map[string]string `yaml:"headers" mapstructure:"headers"`
	UserAgent string            `yaml:"user_agent" mapstructure:"user_agent"`
}

// ApplyDefaults fills the timeout and user agent.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}

// Validate requires a positive timeout and, when set, an absolute http(s)
// base URL.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL == "" {
		return nil
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("httpclient: base_url %q must be an absolute http(s) URL", c.BaseURL)
	}
	return nil
}
