package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/vnykmshr/timerflow/pkg/common/errors"
	"github.com/vnykmshr/timerflow/pkg/common/logging"
	"github.com/vnykmshr/timerflow/pkg/common/validation"
	"github.com/vnykmshr/timerflow/pkg/scheduling/delayqueue"
)

// Result describes one finished task execution.
type Result struct {
	// Task is the task that was executed
	Task *delayqueue.Task

	// Fault is a *errors.ExecutionFault if the work panicked, nil otherwise
	Fault error

	// Duration is how long the work ran
	Duration time.Duration

	// Lateness is how long after its deadline the task started running
	Lateness time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// Pool is a fixed set of workers draining a delay queue.
type Pool interface {
	// Queue returns the queue the workers take tasks from.
	Queue() *delayqueue.Queue

	// Shutdown stops all workers. Workers blocked on the queue return at
	// once; a worker running a task finishes it first. Tasks still queued
	// are left in the queue. Returns a channel that closes when every
	// worker has exited.
	Shutdown() <-chan struct{}

	// Size returns the number of workers in the pool.
	Size() int

	// ActiveWorkers returns the number of workers currently executing tasks.
	ActiveWorkers() int

	// TotalExecuted returns the number of tasks executed, faulted ones included.
	TotalExecuted() int64

	// TotalFaults returns the number of tasks whose work panicked.
	TotalFaults() int64
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Must be greater than 0. See CPUBoundWorkers and IOBoundWorkers.
	WorkerCount int

	// Queue is the delay queue to drain. If nil, a new queue is created.
	Queue *delayqueue.Queue

	// Logger receives worker lifecycle events and execution faults.
	// The zero value means logging.Default; use logging.Nop to discard.
	Logger zerolog.Logger

	// PanicHandler is called when a task's work panics.
	// If nil, faults are logged at error level through Logger.
	PanicHandler func(task *delayqueue.Task, fault *errors.ExecutionFault)

	// FaultLogRate limits logged faults per second when PanicHandler is nil.
	// Zero means every fault is logged. Must not be negative.
	FaultLogRate float64

	// FaultLogBurst is the number of faults logged back to back before
	// FaultLogRate applies. Defaults to 1 when FaultLogRate is set.
	FaultLogBurst int

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)

	// OnTaskStart is called before a task begins execution.
	OnTaskStart func(workerID int, task *delayqueue.Task)

	// OnTaskComplete is called after a task completes (normally or by panicking).
	OnTaskComplete func(workerID int, result Result)
}

// workerPool implements the Pool interface.
type workerPool struct {
	config Config
	queue  *delayqueue.Queue
	faults *faultReporter

	ctx          context.Context
	cancel       context.CancelFunc
	shutdownOnce sync.Once
	done         chan struct{}

	activeWorkers atomic.Int32
	totalExecuted atomic.Int64
	totalFaults   atomic.Int64

	workers  []worker
	workerWg sync.WaitGroup
}

// worker represents a single worker in the pool.
type worker struct {
	id     int
	pool   *workerPool
	logger zerolog.Logger
}

// New creates a worker pool with workerCount workers draining q.
// It panics if workerCount is not positive; use NewWithConfig to get an
// error instead.
func New(workerCount int, q *delayqueue.Queue) Pool {
	pool, err := NewWithConfig(Config{
		WorkerCount: workerCount,
		Queue:       q,
	})
	if err != nil {
		panic(err)
	}
	return pool
}

// NewWithConfig creates a worker pool with the specified configuration and
// starts its workers.
func NewWithConfig(config Config) (Pool, error) {
	if err := validation.ValidatePositive("workerpool", "worker_count", config.WorkerCount); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("workerpool", "fault_log_rate", config.FaultLogRate); err != nil {
		return nil, err
	}
	if config.FaultLogBurst < 0 {
		return nil, errors.NewValidationError("workerpool", "fault_log_burst", config.FaultLogBurst, "cannot be negative").
			WithHint("use 0 for the default burst")
	}

	q := config.Queue
	if q == nil {
		q = delayqueue.New()
	}
	config.Logger = logging.OrDefault(config.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	pool := &workerPool{
		config: config,
		queue:  q,
		faults: newFaultReporter(config.Logger, config.FaultLogRate, config.FaultLogBurst),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	// Create and start workers
	pool.workers = make([]worker, config.WorkerCount)
	for i := 0; i < config.WorkerCount; i++ {
		pool.workers[i] = worker{
			id:     i,
			pool:   pool,
			logger: config.Logger.With().Int("worker_id", i).Logger(),
		}
		pool.workerWg.Add(1)
		go pool.workers[i].run()
	}

	return pool, nil
}
