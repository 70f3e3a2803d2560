package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithRetrySucceedsEventually(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), Config{MaxAttempts: 3, Delay: time.Millisecond}, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithRetry: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), Config{MaxAttempts: 3, Delay: time.Millisecond}, func() error {
		attempts++
		return errors.New("still broken")
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestWithRetryUnrecoverableStopsEarly(t *testing.T) {
	attempts := 0
	sentinel := errors.New("not found")
	err := WithRetry(context.Background(), Config{MaxAttempts: 5, Delay: time.Millisecond}, func() error {
		attempts++
		return Unrecoverable(sentinel)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if !errors.Is(err, sentinel) {
		t.Error("wrapped error lost through Unrecoverable")
	}
}

func TestWithRetryUnrecoverablePropagatesThroughLayers(t *testing.T) {
	// An unrecoverable failure inside a nested policy must stop the outer
	// policy too, so a 404 costs exactly one attempt overall.
	attempts := 0
	inner := Config{MaxAttempts: 3, Delay: time.Millisecond}
	outer := Config{MaxAttempts: 3, Delay: time.Millisecond}

	err := WithRetry(context.Background(), outer, func() error {
		return WithRetry(context.Background(), inner, func() error {
			attempts++
			return Unrecoverable(errors.New("gone"))
		})
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestWithRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := WithRetry(ctx, Config{MaxAttempts: 10, Delay: 50 * time.Millisecond}, func() error {
		attempts++
		cancel()
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestWithRetryBackoffDelays(t *testing.T) {
	start := time.Now()
	attempts := 0
	_ = WithRetry(context.Background(), Config{MaxAttempts: 3, Delay: 20 * time.Millisecond, Backoff: true}, func() error {
		attempts++
		return errors.New("transient")
	})
	// delays: 20ms then 40ms
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("elapsed = %v, want at least 60ms of backoff", elapsed)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}
