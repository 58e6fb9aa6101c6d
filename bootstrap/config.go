package bootstrap

import (
	"github.com/kbukum/sypnna/config"
)

// Config is the constraint for application configuration types. A struct
// embedding config.ServiceConfig satisfies it through promoted methods as
// long as it provides its own ApplyDefaults and Validate for its sections.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
