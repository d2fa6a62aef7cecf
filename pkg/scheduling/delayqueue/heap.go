package delayqueue

// taskHeap is a min-heap of tasks ordered by Task.Less.
// It implements heap.Interface and must only be used through container/heap.
type taskHeap []*Task

func (h taskHeap) Len() int           { return len(h) }
func (h taskHeap) Less(i, j int) bool { return h[i].Less(h[j]) }
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*Task))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil // allow GC
	*h = old[:n-1]
	return t
}

// peek returns the soonest task, or nil when the heap is empty.
func (h taskHeap) peek() *Task {
	if len(h) == 0 {
		return nil
	}
	return h[0]
}
