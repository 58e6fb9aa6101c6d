package observability

import "time"

// HealthStatus is the wire status of a component or of the service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// Health is one component's entry in a ServiceHealth.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// ServiceHealth is the body of the health endpoint.
type ServiceHealth struct {
	Status     HealthStatus `json:"status"`
	Service    string       `json:"service"`
	Version    string       `json:"version,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
	Components []Health     `json:"components,omitempty"`
}

// NewServiceHealth starts a report with status up, stamped now in UTC.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{
		Status:    HealthStatusUp,
		Service:   service,
		Version:   version,
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
}

// AddComponent records ch. Anything but up degrades the service; the
// process answering at all means it is never reported down as a whole.
func (sh *ServiceHealth) AddComponent(ch Health) {
	sh.Components = append(sh.Components, ch)
	if ch.Status != HealthStatusUp {
		sh.Status = HealthStatusDegraded
	}
}

// Healthy counts components reporting up.
func (sh *ServiceHealth) Healthy() int {
	n := 0
	for _, c := range sh.Components {
		if c.Status == HealthStatusUp {
			n++
		}
	}
	return n
}
