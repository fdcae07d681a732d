package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSucceedsAfterFailures(t *testing.T) {
	p := Policy{MaxAttempts: 3, Backoff: Constant(time.Millisecond)}

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestDoReturnsLastError(t *testing.T) {
	p := Policy{MaxAttempts: 2, Backoff: Constant(time.Millisecond)}

	last := errors.New("still failing")
	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return last
	})
	if !errors.Is(err, last) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestDoStopsOnContextCancel(t *testing.T) {
	p := Policy{MaxAttempts: 10, Backoff: Constant(50 * time.Millisecond)}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := p.Do(ctx, func(ctx context.Context) error {
		calls++
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls == 0 {
		t.Error("expected at least one attempt")
	}
}

func TestExponentialBackoff(t *testing.T) {
	b := Exponential(time.Second)
	if b(1) != time.Second {
		t.Errorf("attempt 1: got %v", b(1))
	}
	if b(3) != 4*time.Second {
		t.Errorf("attempt 3: got %v", b(3))
	}
}

func TestZeroAttemptsStillRunsOnce(t *testing.T) {
	p := Policy{}
	calls := 0
	_ = p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", calls)
	}
}
