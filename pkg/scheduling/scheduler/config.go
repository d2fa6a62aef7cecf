package scheduler

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	yaml "go.yaml.in/yaml/v3"

	"github.com/vnykmshr/timerflow/pkg/common/errors"
	"github.com/vnykmshr/timerflow/pkg/common/logging"
	"github.com/vnykmshr/timerflow/pkg/metrics"
)

// FileConfig is the on-disk scheduler configuration.
//
//	workers: 8
//	name: reminders
//	log:
//	  level: info
//	  format: console
//	metrics:
//	  enabled: true
//	  namespace: timerflow
//	fault_log:
//	  rate_per_sec: 1
//	  burst: 5
type FileConfig struct {
	Workers  int            `yaml:"workers"`
	Name     string         `yaml:"name"`
	Log      logging.Config `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	FaultLog FaultLogConfig `yaml:"fault_log"`
}

// MetricsConfig is the metrics section of FileConfig.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// FaultLogConfig is the fault_log section of FileConfig.
type FaultLogConfig struct {
	RatePerSec float64 `yaml:"rate_per_sec"`
	Burst      int     `yaml:"burst"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	fc, err := ParseConfig(data)
	if err != nil {
		return FileConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}

// ParseConfig parses YAML configuration. Unknown keys are rejected.
// Empty input yields the zero FileConfig.
func ParseConfig(data []byte) (FileConfig, error) {
	var fc FileConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return FileConfig{}, fmt.Errorf("%w: %w", errors.ErrInvalidConfiguration, err)
	}
	return fc, nil
}

// Build validates the file configuration and turns it into runtime
// configuration. The logger writes to os.Stderr; metrics go to the default
// Prometheus registerer.
func (fc FileConfig) Build() (Config, metrics.Config, error) {
	return fc.BuildWithWriter(os.Stderr)
}

// BuildWithWriter is Build with the log output sent to w.
func (fc FileConfig) BuildWithWriter(w io.Writer) (Config, metrics.Config, error) {
	if fc.Workers < 0 {
		return Config{}, metrics.Config{}, invalidConfig("workers", fc.Workers, "cannot be negative", "use 0 to size from the CPU count")
	}
	if fc.FaultLog.RatePerSec < 0 {
		return Config{}, metrics.Config{}, invalidConfig("fault_log.rate_per_sec", fc.FaultLog.RatePerSec, "cannot be negative", "use .inf to log every fault")
	}
	if fc.FaultLog.Burst < 0 {
		return Config{}, metrics.Config{}, invalidConfig("fault_log.burst", fc.FaultLog.Burst, "cannot be negative", "use 0 for the default burst")
	}

	logCfg := fc.Log
	if logCfg.Component == "" {
		logCfg.Component = logging.DefaultComponent
	}
	logger, err := logging.New(logCfg, w)
	if err != nil {
		return Config{}, metrics.Config{}, fmt.Errorf("%w: %w", errors.ErrInvalidConfiguration, err)
	}

	cfg := Config{
		WorkerCount:   fc.Workers,
		Name:          fc.Name,
		Logger:        logger,
		FaultLogRate:  fc.FaultLog.RatePerSec,
		FaultLogBurst: fc.FaultLog.Burst,
	}
	mc := metrics.Config{
		Enabled:   fc.Metrics.Enabled,
		Registry:  prometheus.DefaultRegisterer,
		Namespace: fc.Metrics.Namespace,
	}
	return cfg, mc, nil
}

func invalidConfig(field string, value interface{}, reason, hint string) error {
	verr := errors.NewValidationError("scheduler", field, value, reason).WithHint(hint)
	return fmt.Errorf("%w: %w", errors.ErrInvalidConfiguration, verr)
}

// NewFromConfig creates a scheduler from file configuration, instrumented
// when metrics are enabled.
func NewFromConfig(fc FileConfig) (Scheduler, error) {
	cfg, mc, err := fc.Build()
	if err != nil {
		return nil, err
	}
	if !mc.Enabled {
		return NewWithConfig(cfg)
	}
	ms, err := NewWithConfigAndMetrics(cfg, "", mc)
	if err != nil {
		return nil, err
	}
	return ms, nil
}
