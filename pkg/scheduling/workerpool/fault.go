package workerpool

import (
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/vnykmshr/timerflow/pkg/common/errors"
)

// faultReporter logs execution faults, optionally throttled so a task that
// panics in a hot loop cannot flood the log sink.
type faultReporter struct {
	logger     zerolog.Logger
	limiter    *rate.Limiter // nil means unthrottled
	suppressed atomic.Int64
}

func newFaultReporter(logger zerolog.Logger, perSecond float64, burst int) *faultReporter {
	r := &faultReporter{logger: logger}
	if perSecond > 0 {
		if burst <= 0 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return r
}

// report logs fault unless the limiter is exhausted, in which case the fault
// is counted and the count is attached to the next logged fault.
func (r *faultReporter) report(fault *errors.ExecutionFault) {
	if r.limiter != nil && !r.limiter.Allow() {
		r.suppressed.Add(1)
		return
	}

	e := r.logger.Error().
		Int("worker_id", fault.WorkerID).
		Uint64("seq", fault.Seq).
		Interface("panic", fault.Recovered).
		Str("stack", string(fault.Stack))
	if n := r.suppressed.Swap(0); n > 0 {
		e = e.Int64("suppressed", n)
	}
	e.Msg("task execution fault")
}

// Suppressed returns the number of faults dropped since the last logged one.
func (r *faultReporter) Suppressed() int64 {
	return r.suppressed.Load()
}
