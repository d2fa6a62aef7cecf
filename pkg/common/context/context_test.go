package context

import (
	"context"
	"testing"
)

func TestIsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	if IsCanceled(ctx) {
		t.Error("fresh context should not be canceled")
	}

	cancel()
	if !IsCanceled(ctx) {
		t.Error("context should be canceled after cancel()")
	}

	//nolint:staticcheck // nil context is tolerated on purpose
	if IsCanceled(nil) {
		t.Error("nil context should not be canceled")
	}
}

func TestOrBackground(t *testing.T) {
	//nolint:staticcheck // nil context is tolerated on purpose
	if OrBackground(nil) == nil {
		t.Fatal("OrBackground(nil) should return a usable context")
	}

	ctx := context.WithValue(context.Background(), struct{}{}, 1)
	if OrBackground(ctx) != ctx {
		t.Error("OrBackground should return a non-nil context unchanged")
	}
}
