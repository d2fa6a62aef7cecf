package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds configuration for metrics collection.
type Config struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool

	// Registry is the Prometheus registry to use. If nil, the default
	// Prometheus registerer is used.
	Registry prometheus.Registerer

	// Namespace overrides the default "timerflow" namespace for metrics.
	Namespace string
}

// DefaultConfig returns a default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Registry:  prometheus.DefaultRegisterer,
		Namespace: DefaultNamespace,
	}
}

// Build returns the Registry described by the config: DefaultRegistry when
// no custom registerer is set, otherwise the collectors registered on it.
// Building the same config twice reuses the registered collectors.
func (c Config) Build() (*Registry, error) {
	reg := c.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if reg == prometheus.DefaultRegisterer && (c.Namespace == "" || c.Namespace == DefaultNamespace) {
		return DefaultRegistry, nil
	}
	return Register(reg, c.Namespace)
}

// Instrumentable is an interface for components that can be instrumented with metrics.
type Instrumentable interface {
	// EnableMetrics enables metrics collection for this component.
	EnableMetrics(config Config) error

	// DisableMetrics disables metrics collection for this component.
	DisableMetrics()

	// MetricsEnabled returns true if metrics are currently enabled.
	MetricsEnabled() bool
}
