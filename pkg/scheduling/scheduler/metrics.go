package scheduler

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/timerflow/pkg/metrics"
	"github.com/vnykmshr/timerflow/pkg/scheduling/delayqueue"
	"github.com/vnykmshr/timerflow/pkg/scheduling/workerpool"
)

// MetricsScheduler wraps a Scheduler with Prometheus metrics collection.
// Its worker pool reports into the same Registry.
type MetricsScheduler struct {
	*scheduler
	pool     *workerpool.MetricsPool
	registry atomic.Pointer[metrics.Registry]
	enabled  atomic.Bool
}

var (
	_ Scheduler              = (*MetricsScheduler)(nil)
	_ metrics.Instrumentable = (*MetricsScheduler)(nil)
)

// NewWithMetrics creates a scheduler with metrics enabled on a private
// Prometheus registry. It panics if workerCount is not positive.
func NewWithMetrics(workerCount int, name string) *MetricsScheduler {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	s, err := NewWithConfigAndMetrics(Config{WorkerCount: workerCount}, name, metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithConfigAndMetrics creates a scheduler with custom config and metrics.
// A non-empty name overrides cfg.Name.
func NewWithConfigAndMetrics(cfg Config, name string, metricsConfig metrics.Config) (*MetricsScheduler, error) {
	if name != "" {
		cfg.Name = name
	}
	cfg = cfg.withDefaults()

	registry, err := metricsConfig.Build()
	if err != nil {
		return nil, err
	}
	ms := &MetricsScheduler{}
	ms.registry.Store(registry)
	ms.enabled.Store(metricsConfig.Enabled)

	userComplete := cfg.OnTaskComplete
	cfg.OnTaskComplete = func(workerID int, result workerpool.Result) {
		ms.updatePending()
		if userComplete != nil {
			userComplete(workerID, result)
		}
	}

	inner, err := newScheduler(cfg, func(pc workerpool.Config) (workerpool.Pool, error) {
		pool, err := workerpool.NewWithRegistry(pc, cfg.Name, registry)
		if err != nil {
			return nil, err
		}
		if !metricsConfig.Enabled {
			pool.DisableMetrics()
		}
		ms.pool = pool
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	ms.scheduler = inner
	ms.updatePending()

	return ms, nil
}

// updatePending publishes the current queue length.
func (ms *MetricsScheduler) updatePending() {
	if !ms.enabled.Load() || ms.scheduler == nil {
		return
	}
	ms.registry.Load().QueuePending.WithLabelValues(ms.name).Set(float64(ms.queue.Len()))
}

// Submit schedules work and records it.
func (ms *MetricsScheduler) Submit(work func(), delay int64, unit delayqueue.Unit) error {
	err := ms.scheduler.Submit(work, delay, unit)
	if err == nil && ms.enabled.Load() {
		ms.registry.Load().TasksScheduled.WithLabelValues(ms.name).Inc()
		ms.updatePending()
	}
	return err
}

// SubmitAfter schedules work to run after d and records it.
func (ms *MetricsScheduler) SubmitAfter(work func(), d time.Duration) error {
	return ms.Submit(work, int64(d), delayqueue.Nanoseconds)
}

// Pending returns the number of tasks still waiting for a worker.
func (ms *MetricsScheduler) Pending() int {
	n := ms.scheduler.Pending()
	if ms.enabled.Load() {
		ms.registry.Load().QueuePending.WithLabelValues(ms.name).Set(float64(n))
	}
	return n
}

// Name returns the label value the scheduler reports metrics under.
func (ms *MetricsScheduler) Name() string {
	return ms.name
}

// Pool returns the instrumented worker pool.
func (ms *MetricsScheduler) Pool() *workerpool.MetricsPool {
	return ms.pool
}

// EnableMetrics enables metrics collection. A non-nil config.Registry
// replaces the collectors for both the scheduler and its pool; collectors
// already registered there are reused.
func (ms *MetricsScheduler) EnableMetrics(config metrics.Config) error {
	if config.Registry != nil {
		registry, err := config.Build()
		if err != nil {
			return err
		}
		ms.registry.Store(registry)
		ms.pool.UseRegistry(registry)
	}
	ms.enabled.Store(config.Enabled)
	if err := ms.pool.EnableMetrics(metrics.Config{Enabled: config.Enabled}); err != nil {
		return err
	}
	ms.updatePending()
	return nil
}

// DisableMetrics disables metrics collection.
func (ms *MetricsScheduler) DisableMetrics() {
	ms.enabled.Store(false)
	ms.pool.DisableMetrics()
}

// MetricsEnabled returns true if metrics are currently enabled.
func (ms *MetricsScheduler) MetricsEnabled() bool {
	return ms.enabled.Load()
}
