package workerpool

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/timerflow/pkg/common/errors"
	"github.com/vnykmshr/timerflow/pkg/common/validation"
	"github.com/vnykmshr/timerflow/pkg/metrics"
	"github.com/vnykmshr/timerflow/pkg/scheduling/delayqueue"
)

// MetricsPool wraps a worker Pool with Prometheus metrics collection.
type MetricsPool struct {
	Pool
	name     string
	registry atomic.Pointer[metrics.Registry]
	enabled  atomic.Bool

	// inFlight holds, per worker, the registry whose active gauge was
	// incremented for the running task, so the decrement lands on the same
	// collectors even if metrics are toggled or switched meanwhile.
	inFlight []atomic.Pointer[metrics.Registry]
}

var _ metrics.Instrumentable = (*MetricsPool)(nil)

// NewWithMetrics creates a new worker pool with metrics enabled.
func NewWithMetrics(workerCount int, q *delayqueue.Queue, name string) (*MetricsPool, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	config := metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	}

	return NewWithConfigAndMetrics(Config{
		WorkerCount: workerCount,
		Queue:       q,
	}, name, config)
}

// NewWithConfigAndMetrics creates a new worker pool with custom config and
// metrics. The pool's task hooks are chained so user hooks still run.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (*MetricsPool, error) {
	registry, err := metricsConfig.Build()
	if err != nil {
		return nil, err
	}
	return newMetricsPool(config, name, registry, metricsConfig.Enabled)
}

// NewWithRegistry creates a metrics pool reporting into an existing Registry,
// so several components can share one set of collectors.
func NewWithRegistry(config Config, name string, registry *metrics.Registry) (*MetricsPool, error) {
	return newMetricsPool(config, name, registry, true)
}

func newMetricsPool(config Config, name string, registry *metrics.Registry, enabled bool) (*MetricsPool, error) {
	if err := validation.ValidateNotEmpty("workerpool", "pool_name", name); err != nil {
		return nil, err
	}

	mp := &MetricsPool{
		name:     name,
		inFlight: make([]atomic.Pointer[metrics.Registry], max(config.WorkerCount, 0)),
	}
	mp.registry.Store(registry)
	mp.enabled.Store(enabled)

	userStart := config.OnTaskStart
	config.OnTaskStart = func(workerID int, task *delayqueue.Task) {
		mp.taskStarted(workerID)
		if userStart != nil {
			userStart(workerID, task)
		}
	}

	userComplete := config.OnTaskComplete
	config.OnTaskComplete = func(workerID int, result Result) {
		mp.taskCompleted(workerID, result)
		if userComplete != nil {
			userComplete(workerID, result)
		}
	}

	pool, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}
	mp.Pool = pool

	if mp.enabled.Load() {
		mp.registry.Load().WorkerPoolSize.WithLabelValues(name).Set(float64(pool.Size()))
	}

	return mp, nil
}

func (mp *MetricsPool) taskStarted(workerID int) {
	if !mp.enabled.Load() {
		return
	}
	reg := mp.registry.Load()
	reg.WorkerPoolActive.WithLabelValues(mp.name).Inc()
	mp.inFlight[workerID].Store(reg)
}

func (mp *MetricsPool) taskCompleted(workerID int, result Result) {
	if started := mp.inFlight[workerID].Swap(nil); started != nil {
		started.WorkerPoolActive.WithLabelValues(mp.name).Dec()
	}
	if !mp.enabled.Load() {
		return
	}
	reg := mp.registry.Load()

	reg.TaskExecutionDuration.WithLabelValues(mp.name).Observe(result.Duration.Seconds())
	reg.TaskLateness.WithLabelValues(mp.name).Observe(max(result.Lateness, 0).Seconds())

	if errors.IsExecutionFault(result.Fault) {
		reg.TasksFailed.WithLabelValues(mp.name).Inc()
	} else {
		reg.TasksCompleted.WithLabelValues(mp.name).Inc()
	}
	reg.TasksExecuted.WithLabelValues(mp.name).Inc()
}

// Name returns the label value the pool reports metrics under.
func (mp *MetricsPool) Name() string {
	return mp.name
}

// EnableMetrics enables metrics collection. A non-nil config.Registry
// replaces the collectors; collectors already registered there are reused.
func (mp *MetricsPool) EnableMetrics(config metrics.Config) error {
	if config.Registry != nil {
		registry, err := config.Build()
		if err != nil {
			return err
		}
		mp.registry.Store(registry)
	}
	mp.enabled.Store(config.Enabled)

	if config.Enabled {
		mp.registry.Load().WorkerPoolSize.WithLabelValues(mp.name).Set(float64(mp.Size()))
	}

	return nil
}

// UseRegistry switches the pool to already-registered collectors.
func (mp *MetricsPool) UseRegistry(registry *metrics.Registry) {
	mp.registry.Store(registry)
	if mp.enabled.Load() {
		registry.WorkerPoolSize.WithLabelValues(mp.name).Set(float64(mp.Size()))
	}
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPool) DisableMetrics() {
	mp.enabled.Store(false)
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.enabled.Load()
}
