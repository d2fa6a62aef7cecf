package testutil

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestEventually(t *testing.T) {
	t.Run("condition met immediately", func(t *testing.T) {
		called := false
		Eventually(t, func() bool {
			called = true
			return true
		}, 100*time.Millisecond, 10*time.Millisecond)

		if !called {
			t.Error("condition function should be called")
		}
	})

	t.Run("condition met after delay", func(t *testing.T) {
		var counter int32
		done := make(chan struct{})
		go func() {
			defer close(done)
			time.Sleep(50 * time.Millisecond)
			atomic.StoreInt32(&counter, 1)
		}()

		Eventually(t, func() bool {
			return atomic.LoadInt32(&counter) == 1
		}, 200*time.Millisecond, 10*time.Millisecond)
		<-done
	})
}

func TestNever(t *testing.T) {
	Never(t, func() bool { return false }, 30*time.Millisecond, 5*time.Millisecond)
}

func TestWaitForInt32(t *testing.T) {
	var value int32
	done := make(chan struct{})

	go func() {
		defer close(done)
		time.Sleep(30 * time.Millisecond)
		atomic.StoreInt32(&value, 42)
	}()

	WaitForInt32(t, &value, 42, 200*time.Millisecond)
	<-done
}

func TestWaitForInt64(t *testing.T) {
	var value int64
	done := make(chan struct{})

	go func() {
		defer close(done)
		time.Sleep(30 * time.Millisecond)
		atomic.StoreInt64(&value, 100)
	}()

	WaitForInt64(t, &value, 100, 200*time.Millisecond)
	<-done
}

func TestFireRecorder(t *testing.T) {
	r := NewFireRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Func(fmt.Sprintf("task-%d", i%2))()
		}(i)
	}
	wg.Wait()

	AssertEqual(t, r.Len(), 10)
	AssertEqual(t, r.Count("task-0"), 5)
	AssertEqual(t, r.Count("task-1"), 5)
	AssertEqual(t, r.Count("missing"), 0)

	fires := r.Fires()
	for i := 1; i < len(fires); i++ {
		if fires[i].At < fires[i-1].At {
			t.Fatalf("fires not sorted at %d", i)
		}
	}
	AssertEqual(t, len(r.Labels()), 10)

	if r.Elapsed() < fires[len(fires)-1].At {
		t.Error("Elapsed should not be behind the last fire")
	}
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(t)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("context should have a deadline")
	}
	if time.Until(deadline) > TestTimeout {
		t.Errorf("deadline %v is beyond TestTimeout", deadline)
	}
}

func TestAssertNoError(t *testing.T) {
	AssertNoError(t, nil)
}

func TestAssertError(t *testing.T) {
	AssertError(t, errors.New("test error"))
}

func TestAssertErrorIs(t *testing.T) {
	sentinel := errors.New("sentinel")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
}

func TestAssertEqual(t *testing.T) {
	AssertEqual(t, 1, 1)
	AssertEqual(t, "test", "test")
	AssertEqual(t, true, true)
}

func TestAssertNotEqual(t *testing.T) {
	AssertNotEqual(t, 1, 2)
	AssertNotEqual(t, "a", "b")
}

func TestAssertWithin(t *testing.T) {
	AssertWithin(t, 15*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond)
	AssertWithin(t, 0, 0, ImmediateTolerance)
}
