/*
Package workerpool runs a fixed number of workers that drain a delay queue.

Each worker sits in a loop: take the next ready task from the queue, run it,
repeat. Workers never poll; they block inside the queue's Take until a task is
ready or the pool shuts down.

Basic usage:

	q := delayqueue.New()
	pool := workerpool.New(workerpool.CPUBoundWorkers(), q)
	defer func() { <-pool.Shutdown() }()

	task, _ := delayqueue.NewTaskAfter(func() { fmt.Println("tick") }, time.Second)
	_ = q.Put(task)

Fault Isolation:

A task whose work panics does not take its worker down. The panic is
recovered, wrapped in an *errors.ExecutionFault carrying the worker id, task
sequence number and stack trace, and handed to Config.PanicHandler. Without a
handler the fault is logged at error level through Config.Logger, optionally
throttled by FaultLogRate and FaultLogBurst. The worker then goes back to the
queue, so the pool keeps its full size.

Configuration:

	pool, err := workerpool.NewWithConfig(workerpool.Config{
		WorkerCount:  8,
		Queue:        q,
		Logger:       logger,
		FaultLogRate: 1,
		OnTaskComplete: func(workerID int, r workerpool.Result) {
			log.Printf("worker %d ran task %d late by %v", workerID, r.Task.Seq(), r.Lateness)
		},
	})

Sizing:

CPUBoundWorkers returns NumCPU+1. IOBoundWorkers scales the CPU count by the
ratio of blocked time to compute time for tasks that mostly wait.

Shutdown:

Shutdown cancels every blocked Take and returns a channel that closes once
all workers have exited. A worker running a task finishes it first. Tasks that
were still waiting for their deadline stay in the queue.

Metrics:

NewWithConfigAndMetrics wraps the pool with Prometheus instrumentation:
executed, completed and failed counters, execution duration and lateness
histograms, and active and size gauges, all labelled with the pool name.
*/
package workerpool
