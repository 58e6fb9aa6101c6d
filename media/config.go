package media

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kbukum/sypnna/util"
)

const (
	// DefaultMaxSize bounds a staged file.
	DefaultMaxSize int64 = 200 << 20

	defaultFetchTimeout = 5 * time.Minute
	defaultExtractor    = "yt-dlp"
)

// DefaultVideoHosts are routed through the extractor. Subdomains match.
var DefaultVideoHosts = []string{
	"youtube.com",
	"youtu.be",
	"tiktok.com",
	"instagram.com",
	"x.com",
	"twitter.com",
	"vimeo.com",
}

// Config is the media section of the service config.
type Config struct {
	// StagingDir holds staged files. Defaults to <tmp>/sypnna.
	StagingDir string `yaml:"staging_dir" mapstructure:"staging_dir"`
	// MaxSize is a human-readable cap such as "200MB".
	MaxSize string `yaml:"max_size" mapstructure:"max_size"`
	// FetchTimeout bounds one locate-and-stage transfer.
	FetchTimeout time.Duration   `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
	Extractor    ExtractorConfig `yaml:"extractor" mapstructure:"extractor"`
}

// ExtractorConfig configures the yt-dlp locator.
type ExtractorConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	Binary      string        `yaml:"binary" mapstructure:"binary"`
	Args        []string      `yaml:"args" mapstructure:"args"`
	Hosts       []string      `yaml:"hosts" mapstructure:"hosts"`
	GracePeriod time.Duration `yaml:"grace_period" mapstructure:"grace_period"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.StagingDir == "" {
		c.StagingDir = filepath.Join(os.TempDir(), "sypnna")
	}
	if c.MaxSize == "" {
		c.MaxSize = "200MB"
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = defaultFetchTimeout
	}
	if c.Extractor.Binary == "" {
		c.Extractor.Binary = defaultExtractor
	}
	if len(c.Extractor.Hosts) == 0 {
		c.Extractor.Hosts = append([]string(nil), DefaultVideoHosts...)
	}
}

// Validate checks the section.
func (c *Config) Validate() error {
	if c.MaxSizeBytes() <= 0 {
		return fmt.Errorf("media.max_size %q is not a positive size", c.MaxSize)
	}
	return nil
}

// MaxSizeBytes returns MaxSize in bytes.
func (c *Config) MaxSizeBytes() int64 {
	return util.ParseSize(c.MaxSize, DefaultMaxSize)
}
