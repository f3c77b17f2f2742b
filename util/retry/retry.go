package retry

import (
	"context"
	"math/rand"
	"time"
)

// Retry configures retry behavior. Waits are in seconds; the actual wait between
// attempts is a random duration between MinWait and MaxWait.
type Retry struct {
	MinWait    int
	MaxWait    int
	MaxRetries int
}

var DefaultRetry = Retry{MinWait: 1, MaxWait: 8, MaxRetries: 4}

// WaitTime returns a random wait duration within the configured bounds
func (r Retry) WaitTime() time.Duration {
	span := r.MaxWait - r.MinWait
	if span <= 0 {
		return time.Duration(r.MinWait) * time.Second
	}
	return time.Duration(r.MinWait+rand.Intn(span)) * time.Second
}

// RetryFunc retries f until it succeeds, the retry budget is exhausted, or the
// context is canceled. The last error from f is returned.
func RetryFunc(ctx context.Context, f func(ctx context.Context) error, shouldRetry func(error) bool, r Retry) error {
	var err error
	for attempt := 0; attempt <= r.MaxRetries; attempt++ {
		if err = f(ctx); err == nil {
			return nil
		}
		if !shouldRetry(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.WaitTime()):
		}
	}
	return err
}
