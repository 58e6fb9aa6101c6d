package provider

import "context"

// HealthReport is what a provider says about itself.
type HealthReport struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

// HealthReporter is implemented by providers that can describe their state
// beyond the IsAvailable bool.
type HealthReporter interface {
	Health(ctx context.Context) HealthReport
}

// CheckHealth asks p for a report, falling back to IsAvailable.
func CheckHealth(ctx context.Context, p Provider) HealthReport {
	if hr, ok := p.(HealthReporter); ok {
		return hr.Health(ctx)
	}
	return HealthReport{Name: p.Name(), Available: p.IsAvailable(ctx)}
}
