/*
Package scheduling provides delayed task execution primitives for Go applications.

The components stack bottom-up:

  - delayqueue: Tasks ordered by deadline; Take blocks until the head is due
  - workerpool: A fixed number of workers looping on Take and running tasks
  - scheduler: One queue plus one pool behind Submit and Stop

Delay Queue:

The delay queue can be used on its own when the caller owns the consumers:

	q := delayqueue.New()
	task, _ := delayqueue.NewTask(flush, 500, delayqueue.Milliseconds)
	_ = q.Put(task)

	next, err := q.Take(ctx) // blocks until flush is due or ctx is done
	if err == nil {
		next.Run()
	}

Only one blocked taker at a time waits with a timeout on the earliest
deadline; the rest wait untimed until they are handed the role. A Put that
becomes the new head wakes one taker at once, so an earlier task is never held
back behind a later one.

Worker Pool:

	pool := workerpool.New(workerpool.CPUBoundWorkers(), q)
	defer func() { <-pool.Shutdown() }()

A task that panics is recovered and reported; its worker keeps serving.

Scheduler:

	s := scheduler.New(4)
	defer func() { <-s.Stop() }()

	_ = s.SubmitAfter(flush, 500*time.Millisecond)
*/
package scheduling
