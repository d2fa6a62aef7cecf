package delayqueue

import (
	"cmp"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/timerflow/pkg/common/errors"
	"github.com/vnykmshr/timerflow/pkg/common/validation"
)

// State is the lifecycle state of a Task.
type State int32

// Task states. A task moves Pending → Running → Done exactly once.
const (
	Pending State = iota
	Running
	Done
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// epoch anchors deadlines to the monotonic clock; time.Since uses the
// monotonic reading, so wall-clock adjustments never move a deadline.
var epoch = time.Now()

// taskSeq hands out submission sequence numbers used to break deadline ties.
var taskSeq atomic.Uint64

func nanotime() int64 {
	return int64(time.Since(epoch))
}

// Task pairs a unit of work with the absolute deadline it becomes ready at.
// The deadline and sequence number never change after construction.
type Task struct {
	deadline int64 // nanoseconds since epoch
	seq      uint64
	work     func()
	state    atomic.Int32
}

// NewTask creates a task that becomes ready delay units from now.
// A zero or negative delay yields a task that is already ready.
func NewTask(work func(), delay int64, unit Unit) (*Task, error) {
	if err := validation.ValidateWork("delayqueue", "work", work); err != nil {
		return nil, err
	}
	if !unit.Valid() {
		return nil, errors.NewValidationError("delayqueue", "unit", int(unit), "unknown time unit").
			WithHint("use one of the exported Unit constants")
	}

	return &Task{
		deadline: addSaturating(nanotime(), unit.ToNanos(delay)),
		seq:      taskSeq.Add(1),
		work:     work,
	}, nil
}

// NewTaskAfter creates a task that becomes ready after d.
func NewTaskAfter(work func(), d time.Duration) (*Task, error) {
	return NewTask(work, int64(d), Nanoseconds)
}

// TimeUntilReady returns the time left until the deadline, in unit.
// A zero or negative result means the task is ready.
func (t *Task) TimeUntilReady(unit Unit) int64 {
	return unit.FromNanos(t.remaining())
}

// Delay returns the time left until the deadline.
func (t *Task) Delay() time.Duration {
	return time.Duration(t.remaining())
}

func (t *Task) remaining() int64 {
	return subSaturating(t.deadline, nanotime())
}

// Deadline returns a wall-clock estimate of when the task becomes ready.
func (t *Task) Deadline() time.Time {
	return epoch.Add(time.Duration(t.deadline))
}

// Seq returns the task's submission sequence number.
func (t *Task) Seq() uint64 {
	return t.seq
}

// State returns the task's current lifecycle state.
func (t *Task) State() State {
	return State(t.state.Load())
}

// Compare orders tasks by deadline, then by submission sequence.
// It compares full-width values and never depends on when it is called.
func (t *Task) Compare(other *Task) int {
	if c := cmp.Compare(t.deadline, other.deadline); c != 0 {
		return c
	}
	return cmp.Compare(t.seq, other.seq)
}

// Less reports whether t sorts before other.
func (t *Task) Less(other *Task) bool {
	return t.Compare(other) < 0
}

// Run executes the task's work if it has not run yet and reports whether it
// did. A panic in the work propagates to the caller after the task is
// marked Done.
func (t *Task) Run() bool {
	if !t.state.CompareAndSwap(int32(Pending), int32(Running)) {
		return false
	}

	work := t.work
	t.work = nil
	defer t.state.Store(int32(Done))

	work()
	return true
}

func (t *Task) String() string {
	return fmt.Sprintf("task#%d(%s, %s)", t.seq, t.State(), t.Delay())
}
