package main

import (
	"fmt"

	"github.com/kbukum/sypnna/config"
	"github.com/kbukum/sypnna/media"
	"github.com/kbukum/sypnna/observability"
	"github.com/kbukum/sypnna/server"
	"github.com/kbukum/sypnna/transcription"
	"github.com/kbukum/sypnna/version"
)

const serviceName = "sypnna"

// Config is the full service configuration, loaded from
// cmd/sypnna/config.yml and overridable per key from the environment
// (server.port -> SERVER_PORT).
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Transcription transcription.Config `yaml:"transcription" mapstructure:"transcription"`
	Media         media.Config         `yaml:"media" mapstructure:"media"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.GetShortVersion()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Transcription.ApplyDefaults()
	c.Media.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Transcription.Validate(); err != nil {
		return err
	}
	if err := c.Media.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	return c.checkTimeouts()
}

// checkTimeouts rejects a write timeout that would cut off a request still
// inside its poll deadline.
func (c *Config) checkTimeouts() error {
	if write := c.Server.WriteTimeout; float64(write) <= c.Transcription.Poll.Deadline.Seconds() {
		return fmt.Errorf("server.write_timeout (%ds) must exceed transcription.poll.deadline (%s)",
			write, c.Transcription.Poll.Deadline)
	}
	return nil
}
