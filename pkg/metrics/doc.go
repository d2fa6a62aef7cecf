// Package metrics provides Prometheus instrumentation for timerflow components.
//
// This package enables monitoring of the delayed-task scheduler: how many
// tasks are submitted and executed, how many faulted, how long they ran, and
// how late after their deadline they started.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	s := scheduler.NewWithMetrics(4, "billing_reminders")
//	defer func() { <-s.Stop() }()
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	s, err := scheduler.NewWithConfigAndMetrics(
//		scheduler.Config{WorkerCount: 4},
//		"isolated",
//		metrics.Config{Enabled: true, Registry: registry},
//	)
//
// # Available Metrics
//
//   - timerflow_scheduler_tasks_scheduled_total: Total number of tasks submitted
//   - timerflow_scheduler_tasks_executed_total: Total number of tasks executed
//   - timerflow_scheduler_tasks_completed_total: Tasks whose work returned normally
//   - timerflow_scheduler_tasks_failed_total: Tasks whose work panicked
//   - timerflow_scheduler_task_duration_seconds: Time spent executing tasks
//   - timerflow_scheduler_task_lateness_seconds: Deadline to execution start
//   - timerflow_delayqueue_pending_tasks: Tasks waiting for their deadline
//   - timerflow_workerpool_size: Current worker pool size
//   - timerflow_workerpool_active_workers: Workers currently executing a task
//
// # Labels
//
//   - scheduler_name: User-provided name for the scheduler instance
//   - pool_name: User-provided name for the worker pool (same as scheduler_name)
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	s.DisableMetrics()
//	s.EnableMetrics(metrics.DefaultConfig())
//	enabled := s.MetricsEnabled()
package metrics
