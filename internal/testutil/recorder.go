package testutil

import (
	"sort"
	"sync"
	"time"
)

// Fire is one recorded invocation.
type Fire struct {
	Label string
	At    time.Duration // offset from the recorder's start
}

// FireRecorder records when labelled callbacks run, relative to a start time.
// It is safe for concurrent use.
type FireRecorder struct {
	start time.Time

	mu    sync.Mutex
	fires []Fire
}

// NewFireRecorder creates a recorder whose clock starts now.
func NewFireRecorder() *FireRecorder {
	return &FireRecorder{start: time.Now()}
}

// Func returns a callback that records a fire for label each time it runs.
func (r *FireRecorder) Func(label string) func() {
	return func() { r.Record(label) }
}

// Record stores a fire for label at the current offset.
func (r *FireRecorder) Record(label string) {
	at := time.Since(r.start)
	r.mu.Lock()
	r.fires = append(r.fires, Fire{Label: label, At: at})
	r.mu.Unlock()
}

// Elapsed returns the time since the recorder started.
func (r *FireRecorder) Elapsed() time.Duration {
	return time.Since(r.start)
}

// Len returns the number of recorded fires.
func (r *FireRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fires)
}

// Count returns how many times label fired.
func (r *FireRecorder) Count(label string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.fires {
		if f.Label == label {
			n++
		}
	}
	return n
}

// Fires returns the recorded fires ordered by time.
func (r *FireRecorder) Fires() []Fire {
	r.mu.Lock()
	out := append([]Fire(nil), r.fires...)
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out
}

// Labels returns the labels in the order they fired.
func (r *FireRecorder) Labels() []string {
	fires := r.Fires()
	labels := make([]string, len(fires))
	for i, f := range fires {
		labels[i] = f.Label
	}
	return labels
}
