package delayqueue

import (
	"container/heap"
	"context"
	"sync"
	"time"

	tfcontext "github.com/vnykmshr/timerflow/pkg/common/context"
	"github.com/vnykmshr/timerflow/pkg/common/errors"
)

// noLeader marks the absence of a taker in a timed wait.
const noLeader uint64 = 0

// Queue is an unbounded, deadline-ordered blocking queue.
//
// Takers follow the leader-follower discipline: at most one Take call waits
// with a timeout for the current head's deadline; every other Take call
// waits without a timeout until signaled. Put wakes a single taker only when
// the new task becomes the head.
type Queue struct {
	mu     sync.Mutex
	avail  *cond
	tasks  taskHeap
	leader uint64 // id of the Take call in the timed wait, noLeader if none
	takes  uint64 // last Take id handed out
}

// New creates an empty queue.
func New() *Queue {
	q := &Queue{}
	q.avail = newCond(&q.mu)
	return q
}

// Put inserts a task. It never blocks beyond the heap update.
func (q *Queue) Put(t *Task) error {
	if t == nil {
		return errors.NewValidationError("delayqueue", "task", nil, "cannot be nil")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	heap.Push(&q.tasks, t)
	if q.tasks.peek() == t {
		// New soonest deadline: whoever was timing the old head must re-evaluate.
		q.leader = noLeader
		q.avail.signal()
	}
	return nil
}

// Take removes and returns the task with the earliest deadline, waiting
// until that deadline has passed. If ctx is done first, Take returns an
// error wrapping errors.ErrCancelled and leaves the queue untouched.
func (q *Queue) Take(ctx context.Context) (*Task, error) {
	ctx = tfcontext.OrBackground(ctx)

	q.mu.Lock()
	defer func() {
		// Nobody is timing the head: hand responsibility to a parked taker.
		if q.leader == noLeader && len(q.tasks) > 0 {
			q.avail.signal()
		}
		q.mu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return nil, errors.Cancelled(err)
	}

	q.takes++
	self := q.takes

	for {
		head := q.tasks.peek()
		if head == nil {
			if q.avail.wait(ctx, 0) == waitCancelled {
				return nil, errors.Cancelled(ctx.Err())
			}
			continue
		}

		delay := head.remaining()
		if delay <= 0 {
			return heap.Pop(&q.tasks).(*Task), nil
		}

		if q.leader != noLeader && q.leader != self {
			if q.avail.wait(ctx, 0) == waitCancelled {
				return nil, errors.Cancelled(ctx.Err())
			}
			continue
		}

		q.leader = self
		outcome := q.avail.wait(ctx, time.Duration(delay))
		if q.leader == self {
			q.leader = noLeader
		}
		if outcome == waitCancelled {
			return nil, errors.Cancelled(ctx.Err())
		}
	}
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Peek returns the task with the earliest deadline without removing it.
func (q *Queue) Peek() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	head := q.tasks.peek()
	return head, head != nil
}

// Waiters returns the number of Take calls currently parked.
func (q *Queue) Waiters() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.avail.len()
}

// hasLeader reports whether a Take call is in a timed wait.
func (q *Queue) hasLeader() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.leader != noLeader
}
