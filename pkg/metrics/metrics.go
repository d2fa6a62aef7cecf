// Package metrics provides Prometheus instrumentation for timerflow components.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name unless overridden.
const DefaultNamespace = "timerflow"

// latencyBuckets covers sub-millisecond wakeups up to multi-second stalls.
var latencyBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Registry holds all metric instances for timerflow components.
type Registry struct {
	// Task Scheduling Metrics
	TasksScheduled        *prometheus.CounterVec
	TasksExecuted         *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	TaskLateness          *prometheus.HistogramVec

	// Delay Queue Metrics
	QueuePending *prometheus.GaugeVec

	// Worker Pool Metrics
	WorkerPoolSize   *prometheus.GaugeVec
	WorkerPoolActive *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by timerflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithNamespace(reg, DefaultNamespace)
}

// NewRegistryWithNamespace creates a metrics registry whose metric names use
// namespace instead of DefaultNamespace. It panics if a conflicting collector
// is already registered on reg; see Register.
func NewRegistryWithNamespace(reg prometheus.Registerer, namespace string) *Registry {
	r, err := Register(reg, namespace)
	if err != nil {
		panic(err)
	}
	return r
}

// Register creates the timerflow collectors under namespace and registers
// them on reg. Collectors that reg already holds with the same description
// are reused, so registering twice yields a Registry over the same series.
func Register(reg prometheus.Registerer, namespace string) (*Registry, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	r := &Registry{
		TasksScheduled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "tasks_scheduled_total",
				Help:      "Total number of tasks submitted",
			},
			[]string{"scheduler_name"},
		),

		TasksExecuted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "tasks_executed_total",
				Help:      "Total number of tasks executed",
			},
			[]string{"scheduler_name"},
		),

		TasksCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks that returned normally",
			},
			[]string{"scheduler_name"},
		),

		TasksFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks whose work panicked",
			},
			[]string{"scheduler_name"},
		),

		TaskExecutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"scheduler_name"},
		),

		TaskLateness: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "task_lateness_seconds",
				Help:      "Time between a task's deadline and the start of its execution",
				Buckets:   latencyBuckets,
			},
			[]string{"scheduler_name"},
		),

		QueuePending: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "delayqueue",
				Name:      "pending_tasks",
				Help:      "Number of tasks waiting for their deadline",
			},
			[]string{"scheduler_name"},
		),

		WorkerPoolSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Current worker pool size",
			},
			[]string{"pool_name"},
		),

		WorkerPoolActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "active_workers",
				Help:      "Number of workers currently executing a task",
			},
			[]string{"pool_name"},
		),
	}

	var err error
	r.TasksScheduled, err = register(reg, r.TasksScheduled, err)
	r.TasksExecuted, err = register(reg, r.TasksExecuted, err)
	r.TasksCompleted, err = register(reg, r.TasksCompleted, err)
	r.TasksFailed, err = register(reg, r.TasksFailed, err)
	r.TaskExecutionDuration, err = register(reg, r.TaskExecutionDuration, err)
	r.TaskLateness, err = register(reg, r.TaskLateness, err)
	r.QueuePending, err = register(reg, r.QueuePending, err)
	r.WorkerPoolSize, err = register(reg, r.WorkerPoolSize, err)
	r.WorkerPoolActive, err = register(reg, r.WorkerPoolActive, err)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// register adds c to reg, returning the collector already registered in its
// place if there is one. It does nothing once err is set.
func register[C prometheus.Collector](reg prometheus.Registerer, c C, err error) (C, error) {
	if err != nil {
		return c, err
	}
	regErr := reg.Register(c)
	if regErr == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(regErr, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, fmt.Errorf("metrics: register collector: %w", regErr)
}
