/*
Package timerflow provides a delayed-task scheduler for Go applications: work
submitted with a delay runs exactly once, on a fixed pool of workers, as close
to its deadline as possible and never before it.

Task Scheduling (pkg/scheduling):
  - delayqueue: Deadline-ordered blocking queue with leader-follower waiting
  - workerpool: Fixed set of workers draining a delay queue, with fault isolation
  - scheduler: Submit/Stop facade, YAML configuration and metrics

Support packages:
  - metrics: Prometheus collectors shared by instrumented components
  - common/logging: zerolog construction from configuration
  - common/errors: Error taxonomy (invalid argument, execution fault, cancelled, closed)

Example usage:

	import (
		"github.com/vnykmshr/timerflow/pkg/scheduling/delayqueue"
		"github.com/vnykmshr/timerflow/pkg/scheduling/scheduler"
	)

	s := scheduler.NewDefault() // CPU count + 1 workers
	defer func() { <-s.Stop() }()

	_ = s.Submit(sendReminder, 30, delayqueue.Minutes)
*/
package timerflow
