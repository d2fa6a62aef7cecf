package scheduler

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/vnykmshr/timerflow/pkg/common/errors"
	"github.com/vnykmshr/timerflow/pkg/common/logging"
	"github.com/vnykmshr/timerflow/pkg/scheduling/delayqueue"
	"github.com/vnykmshr/timerflow/pkg/scheduling/workerpool"
)

// Defaults applied by NewWithConfig.
const (
	DefaultName          = "scheduler"
	DefaultFaultLogRate  = 1.0
	DefaultFaultLogBurst = 5
)

// Scheduler runs submitted work once, no earlier than its delay.
type Scheduler interface {
	// Submit schedules work to run once, delay units from now. A zero or
	// negative delay makes the work ready at once.
	Submit(work func(), delay int64, unit delayqueue.Unit) error

	// SubmitAfter schedules work to run once after d.
	SubmitAfter(work func(), d time.Duration) error

	// Pending returns the number of tasks still waiting for a worker.
	Pending() int

	// Size returns the number of workers.
	Size() int

	// Stop shuts the workers down. Submissions afterwards fail with
	// errors.ErrClosed and tasks still pending never run. The returned
	// channel closes once every worker has exited. Stop is idempotent.
	Stop() <-chan struct{}
}

// Config holds scheduler configuration.
type Config struct {
	// WorkerCount is the number of workers. Zero means CPUBoundWorkers.
	WorkerCount int

	// Name identifies the scheduler in logs and metrics. Default "scheduler".
	Name string

	// Logger receives lifecycle events and execution faults.
	// The zero value means logging.Default; use logging.Nop to discard.
	Logger zerolog.Logger

	// PanicHandler is called when a task's work panics. If nil, the fault
	// is logged through Logger.
	PanicHandler func(task *delayqueue.Task, fault *errors.ExecutionFault)

	// OnTaskComplete is called after every execution, faulted or not.
	OnTaskComplete func(workerID int, result workerpool.Result)

	// FaultLogRate limits logged faults per second. Zero means
	// DefaultFaultLogRate; math.Inf(1) disables the limit.
	FaultLogRate float64

	// FaultLogBurst is the number of faults logged back to back before the
	// rate applies. Zero means DefaultFaultLogBurst.
	FaultLogBurst int
}

// scheduler is the default Scheduler: a delay queue drained by a worker pool.
type scheduler struct {
	name   string
	queue  *delayqueue.Queue
	pool   workerpool.Pool
	logger zerolog.Logger
	closed atomic.Bool
}

// New creates a scheduler with workerCount workers.
// It panics if workerCount is not positive.
func New(workerCount int) Scheduler {
	if workerCount <= 0 {
		panic(errors.NewValidationError("scheduler", "worker_count", workerCount, "must be positive").
			WithHint("use NewDefault to size the pool from the CPU count"))
	}
	s, err := NewWithConfig(Config{WorkerCount: workerCount})
	if err != nil {
		panic(err)
	}
	return s
}

// NewDefault creates a scheduler sized for CPU-bound work.
func NewDefault() Scheduler {
	return New(workerpool.CPUBoundWorkers())
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) (Scheduler, error) {
	s, err := newScheduler(cfg, workerpool.NewWithConfig)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// withDefaults returns cfg with zero fields replaced by their defaults.
func (cfg Config) withDefaults() Config {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = workerpool.CPUBoundWorkers()
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	cfg.Logger = logging.OrDefault(cfg.Logger)
	if cfg.FaultLogRate == 0 {
		cfg.FaultLogRate = DefaultFaultLogRate
	}
	if cfg.FaultLogBurst == 0 {
		cfg.FaultLogBurst = DefaultFaultLogBurst
	}
	return cfg
}

func newScheduler(cfg Config, newPool func(workerpool.Config) (workerpool.Pool, error)) (*scheduler, error) {
	cfg = cfg.withDefaults()

	logger := cfg.Logger.With().Str("scheduler", cfg.Name).Logger()
	queue := delayqueue.New()

	pool, err := newPool(workerpool.Config{
		WorkerCount:    cfg.WorkerCount,
		Queue:          queue,
		Logger:         logger,
		PanicHandler:   cfg.PanicHandler,
		FaultLogRate:   cfg.FaultLogRate,
		FaultLogBurst:  cfg.FaultLogBurst,
		OnTaskComplete: cfg.OnTaskComplete,
	})
	if err != nil {
		return nil, fmt.Errorf("scheduler %q: %w", cfg.Name, err)
	}

	logger.Debug().Int("workers", pool.Size()).Msg("scheduler started")

	return &scheduler{
		name:   cfg.Name,
		queue:  queue,
		pool:   pool,
		logger: logger,
	}, nil
}

func (s *scheduler) Submit(work func(), delay int64, unit delayqueue.Unit) error {
	if s.closed.Load() {
		return fmt.Errorf("scheduler %q: %w", s.name, errors.ErrClosed)
	}

	task, err := delayqueue.NewTask(work, delay, unit)
	if err != nil {
		return err
	}
	return s.queue.Put(task)
}

func (s *scheduler) SubmitAfter(work func(), d time.Duration) error {
	return s.Submit(work, int64(d), delayqueue.Nanoseconds)
}

func (s *scheduler) Pending() int {
	return s.queue.Len()
}

func (s *scheduler) Size() int {
	return s.pool.Size()
}

func (s *scheduler) Stop() <-chan struct{} {
	if s.closed.CompareAndSwap(false, true) {
		s.logger.Debug().Int("dropped", s.queue.Len()).Msg("scheduler stopping")
	}
	return s.pool.Shutdown()
}
