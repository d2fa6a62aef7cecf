package delayqueue

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// waitOutcome is the result of a cond wait.
type waitOutcome int

const (
	waitSignaled waitOutcome = iota
	waitTimedOut
	waitCancelled
)

// waiter is a goroutine parked in cond.wait.
type waiter struct {
	ready    chan struct{}
	signaled bool // set under the cond's lock
}

// cond is a condition variable bound to a mutex that, unlike sync.Cond,
// supports timed waits and context cancellation. Waiters are woken one at a
// time in FIFO order.
type cond struct {
	mu      *sync.Mutex
	waiters list.List // of *waiter
}

func newCond(mu *sync.Mutex) *cond {
	return &cond{mu: mu}
}

// wait parks the caller until it is signaled, timeout elapses, or ctx is
// done. A timeout <= 0 waits without a deadline. The mutex must be held on
// entry; it is released while parked and held again on return.
func (c *cond) wait(ctx context.Context, timeout time.Duration) waitOutcome {
	w := &waiter{ready: make(chan struct{})}
	elem := c.waiters.PushBack(w)
	c.mu.Unlock()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	outcome := waitSignaled
	select {
	case <-w.ready:
	case <-expired:
		outcome = waitTimedOut
	case <-ctx.Done():
		outcome = waitCancelled
	}

	c.mu.Lock()
	if w.signaled {
		// A signal raced the timer; it was already delivered to us.
		if outcome == waitTimedOut {
			outcome = waitSignaled
		}
		return outcome
	}
	c.waiters.Remove(elem)
	return outcome
}

// signal wakes the longest-parked waiter, if any. The mutex must be held.
func (c *cond) signal() {
	front := c.waiters.Front()
	if front == nil {
		return
	}
	w := c.waiters.Remove(front).(*waiter)
	w.signaled = true
	close(w.ready)
}

// len returns the number of parked waiters. The mutex must be held.
func (c *cond) len() int {
	return c.waiters.Len()
}
