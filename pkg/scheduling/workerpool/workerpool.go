package workerpool

import (
	"runtime/debug"
	"time"

	tfcontext "github.com/vnykmshr/timerflow/pkg/common/context"
	"github.com/vnykmshr/timerflow/pkg/common/errors"
	"github.com/vnykmshr/timerflow/pkg/scheduling/delayqueue"
)

// Queue returns the queue the workers take tasks from.
func (p *workerPool) Queue() *delayqueue.Queue {
	return p.queue
}

// Shutdown stops all workers and returns a channel that closes once they
// have exited. It is safe to call more than once.
func (p *workerPool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		// Abort every blocked Take
		p.cancel()

		go func() {
			p.workerWg.Wait()
			if n := p.faults.Suppressed(); n > 0 {
				p.config.Logger.Warn().Int64("suppressed", n).Msg("execution faults dropped by the fault log limit")
			}
			close(p.done)
		}()
	})

	return p.done
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (p *workerPool) ActiveWorkers() int {
	return int(p.activeWorkers.Load())
}

// TotalExecuted returns the number of tasks executed.
func (p *workerPool) TotalExecuted() int64 {
	return p.totalExecuted.Load()
}

// TotalFaults returns the number of tasks whose work panicked.
func (p *workerPool) TotalFaults() int64 {
	return p.totalFaults.Load()
}

// run is the main loop for a worker.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	w.callback("OnWorkerStart", func() {
		if w.pool.config.OnWorkerStart != nil {
			w.pool.config.OnWorkerStart(w.id)
		}
	})
	w.logger.Debug().Msg("worker started")

	defer func() {
		w.logger.Debug().Msg("worker stopped")
		w.callback("OnWorkerStop", func() {
			if w.pool.config.OnWorkerStop != nil {
				w.pool.config.OnWorkerStop(w.id)
			}
		})
	}()

	for {
		task, err := w.pool.queue.Take(w.pool.ctx)
		if err != nil {
			if tfcontext.IsCanceled(w.pool.ctx) {
				return
			}
			// Only this wait was abandoned; keep serving the queue.
			continue
		}
		w.executeTask(task)
	}
}

// executeTask runs a single task inside a fault boundary, so a panicking
// task never takes its worker down.
func (w *worker) executeTask(task *delayqueue.Task) {
	pool := w.pool
	lateness := -task.Delay()

	w.callback("OnTaskStart", func() {
		if pool.config.OnTaskStart != nil {
			pool.config.OnTaskStart(w.id, task)
		}
	})

	pool.activeWorkers.Add(1)
	start := time.Now()
	fault := w.runTask(task)
	duration := time.Since(start)
	pool.activeWorkers.Add(-1)
	pool.totalExecuted.Add(1)

	result := Result{
		Task:     task,
		Duration: duration,
		Lateness: lateness,
		WorkerID: w.id,
	}

	if fault != nil {
		pool.totalFaults.Add(1)
		result.Fault = fault
		w.reportFault(task, fault)
	}

	w.callback("OnTaskComplete", func() {
		if pool.config.OnTaskComplete != nil {
			pool.config.OnTaskComplete(w.id, result)
		}
	})
}

// runTask executes the work and converts a panic into an ExecutionFault.
func (w *worker) runTask(task *delayqueue.Task) (fault *errors.ExecutionFault) {
	defer func() {
		if r := recover(); r != nil {
			fault = errors.NewExecutionFault(w.id, task.Seq(), r, debug.Stack())
		}
	}()

	task.Run()
	return nil
}

// reportFault hands a fault to the PanicHandler, or logs it.
func (w *worker) reportFault(task *delayqueue.Task, fault *errors.ExecutionFault) {
	if handler := w.pool.config.PanicHandler; handler != nil {
		w.callback("PanicHandler", func() { handler(task, fault) })
		return
	}
	w.pool.faults.report(fault)
}

// callback invokes a user hook; a panic in the hook is logged and dropped.
func (w *worker) callback(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().
				Str("callback", name).
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("worker callback panicked")
		}
	}()
	fn()
}
