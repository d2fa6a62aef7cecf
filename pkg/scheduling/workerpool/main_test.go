package workerpool

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// Every test must shut its pool down and wait for the workers to exit.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
