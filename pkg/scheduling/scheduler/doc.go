/*
Package scheduler runs work once after a delay on a fixed pool of workers.

A Scheduler owns a delay queue and a worker pool draining it. Submit turns the
work and delay into a task and puts it on the queue; the first idle worker
runs it as soon as its deadline passes. Work never runs before its deadline
and runs exactly once.

Basic Usage:

	s := scheduler.New(4)
	defer func() { <-s.Stop() }()

	err := s.Submit(func() {
		fmt.Println("five seconds later")
	}, 5, delayqueue.Seconds)

	// Or with a time.Duration
	err = s.SubmitAfter(sendReminder, 24*time.Hour)

A zero or negative delay makes the work ready at once. Submit fails
synchronously with errors.ErrInvalidArgument for nil work or an unknown unit,
and with errors.ErrClosed once Stop has been called. Nothing is returned for
the submitted work: there is no handle, no cancellation and no result.

Ordering:

Ready tasks run in deadline order. Tasks with equal deadlines run in the
order they were created. With one worker this is a strict sequence; with
more, tasks whose deadlines are close can overlap.

Configuration:

	s, err := scheduler.NewWithConfig(scheduler.Config{
		WorkerCount: workerpool.IOBoundWorkers(90*time.Millisecond, 10*time.Millisecond),
		Name:        "reminders",
		Logger:      logger,
		PanicHandler: func(task *delayqueue.Task, fault *errors.ExecutionFault) {
			alerting.Notify(fault)
		},
	})

WorkerCount defaults to workerpool.CPUBoundWorkers. Execution faults go to
PanicHandler, or to Logger at error level, at most FaultLogRate per second.

The same settings can be read from YAML:

	fc, err := scheduler.LoadConfig("timerflow.yaml")
	if err != nil {
		return err
	}
	s, err := scheduler.NewFromConfig(fc)

Unknown keys are rejected so that typos surface at startup.

Metrics:

NewWithConfigAndMetrics instruments the scheduler and its pool with
Prometheus collectors labelled with the scheduler name: tasks scheduled,
executed, completed and failed, execution duration, lateness, pending queue
length, pool size and active workers.

	s, err := scheduler.NewWithConfigAndMetrics(cfg, "reminders", metrics.DefaultConfig())
	http.Handle("/metrics", promhttp.Handler())

Stopping:

Stop shuts the worker pool down and returns a channel that closes once every
worker has exited. Work already running finishes; work still waiting is
dropped.
*/
package scheduler
