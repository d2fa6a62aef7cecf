/*
Package delayqueue provides a deadline-ordered blocking queue of delayed tasks.

A Task pairs a work function with an absolute deadline on the process
monotonic clock. A Queue holds tasks in a min-heap keyed by deadline and
hands each task to exactly one caller of Take once its deadline has passed.

Basic usage:

	q := delayqueue.New()

	task, err := delayqueue.NewTask(func() {
		fmt.Println("fired")
	}, 200, delayqueue.Milliseconds)
	if err != nil {
		return err // nil work or unknown unit
	}
	_ = q.Put(task)

	t, err := q.Take(ctx) // blocks about 200ms
	if err != nil {
		return err // ctx was canceled; the task is still queued
	}
	t.Run()

Waiting Discipline:

Take uses the leader-follower pattern. At most one Take call, the leader,
sleeps with a timeout equal to the head's remaining delay. All other Take
calls sleep without a timeout until they are signaled. Put signals a single
waiter, and only when the new task becomes the earliest deadline, so a
newly submitted urgent task is never held back behind a stale timer and idle
takers are never woken en masse.

Whenever a Take call returns, by extracting a task or by cancellation, it
passes the responsibility on: if nobody is timing the head and the queue is
non-empty, one parked waiter is woken.

Ordering:

Tasks are extracted in non-decreasing deadline order. Equal deadlines are
extracted in submission order, using a process-wide sequence number assigned
by NewTask. Comparison works on full-width int64 nanoseconds and is stable
over time.

Cancellation:

A canceled context aborts a blocked Take with an error wrapping
errors.ErrCancelled. The heap is not modified; the task that would have been
returned stays pending for another taker.

Thread Safety:

All Queue methods are safe for concurrent use. Put never blocks beyond the
O(log n) heap update.
*/
package delayqueue
