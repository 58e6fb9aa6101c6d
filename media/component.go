package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kbukum/sypnna/component"
	"github.com/kbukum/sypnna/logger"
	"github.com/kbukum/sypnna/util"
)

const (
	StagingComponentName   = "media-staging"
	ExtractorComponentName = "media-extractor"

	versionProbeTimeout = 10 * time.Second
)

var (
	_ component.Component   = (*StagingComponent)(nil)
	_ component.Describable = (*StagingComponent)(nil)
	_ component.Component   = (*ExtractorComponent)(nil)
	_ component.Describable = (*ExtractorComponent)(nil)
)

// StagingComponent owns the staging directory. On start it creates the
// directory and removes staged files left behind by a previous process.
type StagingComponent struct {
	stager *Stager
	log    *logger.Logger
}

// NewStagingComponent wraps a Stager.
func NewStagingComponent(s *Stager, log *logger.Logger) *StagingComponent {
	return &StagingComponent{stager: s, log: log.WithComponent("media")}
}

func (c *StagingComponent) Name() string { return StagingComponentName }

func (c *StagingComponent) Start(ctx context.Context) error {
	if err := os.MkdirAll(c.stager.dir, 0o700); err != nil {
		return fmt.Errorf("create staging dir %s: %w", c.stager.dir, err)
	}
	removed, err := c.sweep()
	if err != nil {
		return err
	}
	if removed > 0 {
		c.log.Info("Removed leftover staged files", logger.Fields("dir", c.stager.dir, "count", removed))
	}
	return nil
}

// sweep deletes *.media files in the staging directory.
func (c *StagingComponent) sweep() (int, error) {
	matches, err := filepath.Glob(filepath.Join(c.stager.dir, "*"+stagedExt))
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			c.log.Warn("Failed to remove leftover staged file", logger.MergeWithError(logger.Fields("path", m), err))
			continue
		}
		removed++
	}
	return removed, nil
}

func (c *StagingComponent) Stop(ctx context.Context) error { return nil }

func (c *StagingComponent) Health(ctx context.Context) component.Health {
	h := component.Health{Name: StagingComponentName, Status: component.StatusHealthy, Message: c.stager.dir}
	info, err := os.Stat(c.stager.dir)
	switch {
	case err != nil:
		h.Status = component.StatusUnhealthy
		h.Message = err.Error()
	case !info.IsDir():
		h.Status = component.StatusUnhealthy
		h.Message = c.stager.dir + " is not a directory"
	}
	return h
}

func (c *StagingComponent) Describe() component.Description {
	return component.Description{
		Name:    "Media staging",
		Type:    "storage",
		Details: fmt.Sprintf("%s max=%s", c.stager.dir, util.FormatSize(c.stager.maxSize)),
	}
}

// ExtractorComponent probes the extractor binary at startup. A missing
// binary degrades the service instead of failing it: direct media links
// still work.
type ExtractorComponent struct {
	extractor *ExtractorLocator
	log       *logger.Logger

	mu      sync.RWMutex
	version string
	probe   error
}

// NewExtractorComponent wraps an ExtractorLocator.
func NewExtractorComponent(e *ExtractorLocator, log *logger.Logger) *ExtractorComponent {
	return &ExtractorComponent{extractor: e, log: log.WithComponent("media")}
}

func (c *ExtractorComponent) Name() string { return ExtractorComponentName }

func (c *ExtractorComponent) Start(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	v, err := c.extractor.Version(probeCtx)

	c.mu.Lock()
	c.version, c.probe = v, err
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("Extractor unavailable, video pages will be rejected",
			logger.MergeWithError(logger.Fields("binary", c.extractor.cfg.Binary), err))
		return nil
	}
	c.log.Debug("Extractor found", logger.Fields("binary", c.extractor.cfg.Binary, "version", v))
	return nil
}

func (c *ExtractorComponent) Stop(ctx context.Context) error { return nil }

func (c *ExtractorComponent) Health(ctx context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.probe != nil {
		return component.Health{
			Name:    ExtractorComponentName,
			Status:  component.StatusDegraded,
			Message: c.extractor.cfg.Binary + " unavailable",
		}
	}
	return component.Health{
		Name:    ExtractorComponentName,
		Status:  component.StatusHealthy,
		Message: c.extractor.cfg.Binary + " " + c.version,
	}
}

func (c *ExtractorComponent) Describe() component.Description {
	c.mu.RLock()
	defer c.mu.RUnlock()
	details := c.extractor.cfg.Binary
	if c.version != "" {
		details += " " + c.version
	}
	return component.Description{Name: "Audio extractor", Type: "tool", Details: details}
}
