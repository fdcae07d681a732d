package retry

import (
	"context"
	"time"
)

// Policy is a reusable retry policy: how many attempts to make and how
// long to sleep between them. One policy is shared at the data-access
// layer instead of per-call-site loops.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// Default mirrors the historical behavior of the featured read path:
// three attempts with a fixed one second delay.
var Default = Policy{
	MaxAttempts: 3,
	Backoff:     Constant(time.Second),
}

// Constant returns a backoff function with a fixed delay.
func Constant(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

// Exponential doubles the delay each attempt, starting at base.
func Exponential(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		d := base
		for i := 1; i < attempt; i++ {
			d *= 2
		}
		return d
	}
}

// Do runs op until it succeeds, attempts are exhausted or the context
// is done. The last error is returned.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		var delay time.Duration
		if p.Backoff != nil {
			delay = p.Backoff(attempt)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}
