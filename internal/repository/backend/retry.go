package backend

import (
	"context"
	"net/http"
	"time"
)

// RetryPolicy controls how many times a backend call is attempted.
// The zero value and MaxAttempts=1 both mean a single attempt.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration // wait before attempt n is n*Backoff
}

// SingleAttempt is the default policy: interactive voice turns should fail fast.
var SingleAttempt = RetryPolicy{MaxAttempts: 1}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// retryable reports whether a response or transport error is worth another attempt.
// Only transport failures and 5xx responses are retried.
func retryable(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp.StatusCode >= http.StatusInternalServerError
}

// wait sleeps before the given (1-based) attempt, honoring cancellation.
func (p RetryPolicy) wait(ctx context.Context, attempt int) error {
	if p.Backoff <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(attempt-1) * p.Backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
