// Package integration contains integration tests that verify cross-package functionality.
// These tests ensure that different components work together correctly in realistic scenarios.
package integration

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/goleak"

	"github.com/vnykmshr/timerflow/internal/testutil"
	"github.com/vnykmshr/timerflow/pkg/metrics"
	"github.com/vnykmshr/timerflow/pkg/scheduling/delayqueue"
	"github.com/vnykmshr/timerflow/pkg/scheduling/scheduler"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// lockedBuffer collects log output written by workers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

const integrationConfig = `
workers: 3
name: integration
log:
  level: info
  format: json
metrics:
  enabled: true
fault_log:
  rate_per_sec: 0.001
  burst: 1
`

// TestConfiguredSchedulerEndToEnd loads a YAML file, runs work through an
// instrumented scheduler, and checks the logs and the scraped metrics.
func TestConfiguredSchedulerEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timerflow.yaml")
	testutil.AssertNoError(t, os.WriteFile(path, []byte(integrationConfig), 0o600))

	fc, err := scheduler.LoadConfig(path)
	testutil.AssertNoError(t, err)

	logs := &lockedBuffer{}
	cfg, mc, err := fc.BuildWithWriter(logs)
	testutil.AssertNoError(t, err)

	// Keep the test off the global registry.
	reg := prometheus.NewRegistry()
	mc.Registry = reg

	s, err := scheduler.NewWithConfigAndMetrics(cfg, "", mc)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, s.Size(), 3)
	testutil.AssertEqual(t, s.Name(), "integration")

	rec := testutil.NewFireRecorder()
	for _, ms := range []int64{80, 40, 120, 0} {
		testutil.AssertNoError(t, s.Submit(rec.Func("ok"), ms, delayqueue.Milliseconds))
	}
	var panicked int32
	for i := 0; i < 3; i++ {
		testutil.AssertNoError(t, s.SubmitAfter(func() {
			atomic.AddInt32(&panicked, 1)
			panic("integration fault")
		}, 20*time.Millisecond))
	}
	testutil.AssertNoError(t, s.Submit(rec.Func("never"), 1, delayqueue.Hours))

	testutil.Eventually(t, func() bool { return rec.Count("ok") == 4 }, time.Second, 5*time.Millisecond)
	testutil.WaitForInt32(t, &panicked, 3, time.Second)
	testutil.Eventually(t, func() bool { return s.Pending() == 1 }, time.Second, 5*time.Millisecond)

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	defer srv.Close()

	var body string
	testutil.Eventually(t, func() bool {
		body = scrape(t, srv.URL)
		return strings.Contains(body, `timerflow_scheduler_tasks_executed_total{scheduler_name="integration"} 7`) &&
			strings.Contains(body, `timerflow_delayqueue_pending_tasks{scheduler_name="integration"} 1`)
	}, time.Second, 10*time.Millisecond)

	for _, want := range []string{
		`timerflow_scheduler_tasks_scheduled_total{scheduler_name="integration"} 8`,
		`timerflow_scheduler_tasks_completed_total{scheduler_name="integration"} 4`,
		`timerflow_scheduler_tasks_failed_total{scheduler_name="integration"} 3`,
		`timerflow_workerpool_size{pool_name="integration"} 3`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}

	select {
	case <-s.Stop():
	case <-time.After(testutil.TestTimeout):
		t.Fatal("scheduler did not stop")
	}
	testutil.AssertEqual(t, rec.Count("never"), 0)

	// Rate 0.001/s with burst 1: only the first fault is logged.
	faults := 0
	scanner := bufio.NewScanner(strings.NewReader(logs.String()))
	for scanner.Scan() {
		var entry map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("bad log line %q: %v", scanner.Text(), err)
		}
		if entry["message"] != "task execution fault" {
			continue
		}
		faults++
		testutil.AssertEqual(t, entry["scheduler"], interface{}("integration"))
		testutil.AssertEqual(t, entry["component"], interface{}("timerflow"))
		testutil.AssertEqual(t, entry["panic"], interface{}("integration fault"))
	}
	testutil.AssertEqual(t, faults, 1)
}

func scrape(t *testing.T, url string) string {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	testutil.AssertNoError(t, err)
	// No keep-alive, so no client goroutines outlive the test.
	req.Close = true

	resp, err := http.DefaultClient.Do(req)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	testutil.AssertNoError(t, err)
	return string(body)
}

// TestPoolsShareRegistry checks that two pools with distinct names can
// report into the same collectors.
func TestPoolsShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	shared := metrics.NewRegistry(reg)

	a, err := scheduler.NewWithConfigAndMetrics(scheduler.Config{WorkerCount: 1}, "a", metrics.Config{Enabled: true})
	testutil.AssertNoError(t, err)
	b, err := scheduler.NewWithConfigAndMetrics(scheduler.Config{WorkerCount: 1}, "b", metrics.Config{Enabled: true})
	testutil.AssertNoError(t, err)

	a.Pool().UseRegistry(shared)
	b.Pool().UseRegistry(shared)

	var done sync.WaitGroup
	done.Add(2)
	testutil.AssertNoError(t, a.SubmitAfter(done.Done, 0))
	testutil.AssertNoError(t, b.SubmitAfter(done.Done, 0))
	done.Wait()

	testutil.Eventually(t, func() bool {
		families, err := reg.Gather()
		testutil.AssertNoError(t, err)
		for _, mf := range families {
			if mf.GetName() == "timerflow_scheduler_tasks_executed_total" {
				return len(mf.GetMetric()) == 2
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	<-a.Stop()
	<-b.Stop()
}
