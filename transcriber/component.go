package transcriber

import (
	"context"
	"fmt"

	"github.com/kbukum/sypnna/component"
	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/provider"
	"github.com/kbukum/sypnna/util"
)

const ComponentName = "transcriber"

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component exposes the Service to the lifecycle registry. Start rejects a
// provider name with no registered factory.
type Component struct {
	svc *Service
}

// NewComponent wraps svc.
func NewComponent(svc *Service) *Component {
	return &Component{svc: svc}
}

func (c *Component) Name() string { return ComponentName }

func (c *Component) Start(ctx context.Context) error {
	name := c.svc.cfg.Provider
	if !c.svc.registry.Has(name) {
		return apperrors.UnknownProvider(name)
	}
	return nil
}

func (c *Component) Stop(ctx context.Context) error { return nil }

// Health builds the configured provider without calling it. A provider that
// cannot be built, usually for a missing credential, degrades the service.
func (c *Component) Health(ctx context.Context) component.Health {
	name := c.svc.cfg.Provider
	h := component.Health{Name: ComponentName, Status: component.StatusHealthy, Message: name}

	p, err := c.svc.registry.Create(name, c.svc.cfg.ProviderConfigFor(name))
	if err != nil {
		h.Status = component.StatusDegraded
		h.Message = name + ": " + apperrors.From(err).PublicMessage()
		if apperrors.HasCode(err, apperrors.ErrCodeMissingCredential) {
			h.Message = name + ": credential not configured"
		}
		return h
	}
	if report := provider.CheckHealth(ctx, p); !report.Available {
		h.Status = component.StatusDegraded
		h.Message = util.Coalesce(report.Message, name+": unavailable")
	}
	return h
}

// Describe reports the provider, its masked credential and the poll bounds.
func (c *Component) Describe() component.Description {
	name := c.svc.cfg.Provider
	pc := c.svc.cfg.ProviderConfigFor(name)
	key := "unset"
	if v, err := pc.Credential(); err == nil {
		key = util.MaskSecret(v, 4)
	}
	return component.Description{
		Name: "Transcription",
		Type: "provider",
		Details: fmt.Sprintf("%s %s=%s poll=%s/%s",
			name, pc.CredentialVar(), key, c.svc.cfg.Poll.Interval, c.svc.cfg.Poll.Deadline),
	}
}
