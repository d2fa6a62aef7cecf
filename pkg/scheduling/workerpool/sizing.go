package workerpool

import (
	"math"
	"runtime"
	"time"
)

// CPUBoundWorkers returns the worker count recommended for CPU-bound tasks:
// one worker per CPU plus one to cover the occasional stall.
func CPUBoundWorkers() int {
	return runtime.NumCPU() + 1
}

// IOBoundWorkers returns the worker count recommended for tasks that spend
// ioWait blocked for every cpuTime spent computing:
// ceil(NumCPU * (1 + ioWait/cpuTime)) + 1. A non-positive cpuTime or a
// negative ioWait falls back to CPUBoundWorkers.
func IOBoundWorkers(ioWait, cpuTime time.Duration) int {
	if cpuTime <= 0 || ioWait < 0 {
		return CPUBoundWorkers()
	}
	n := math.Ceil(float64(runtime.NumCPU())*(1+float64(ioWait)/float64(cpuTime))) + 1
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
