package observability

import (
	"time"

	"resumeradar/internal/config"
)

// defaultCollectionInterval applies when the config leaves the interval unset
const defaultCollectionInterval = 15 * time.Second

// settings is the resolved observability configuration
type settings struct {
	config.ObservabilityConfig
	serviceVersion string
	interval       time.Duration
}

// resolveSettings fills the values the config leaves to runtime
func resolveSettings(cfg config.ObservabilityConfig, version string) settings {
	s := settings{ObservabilityConfig: cfg, serviceVersion: cfg.ServiceVersion, interval: cfg.Metrics.CollectionInterval}
	if s.serviceVersion == "" {
		s.serviceVersion = version
	}
	if s.interval <= 0 {
		s.interval = defaultCollectionInterval
	}
	if s.ServiceName == "" {
		s.ServiceName = "resumeradar"
	}
	if s.ServiceInstance == "" {
		s.ServiceInstance = s.ServiceName + "-1"
	}
	return s
}
