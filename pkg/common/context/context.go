package context

import (
	"context"
	"errors"
	"time"
)

// Detach returns a context that keeps the parent's values but not its
// cancellation, bounded by timeout when timeout is positive. Work shared by
// several callers runs under a detached context so one caller giving up does
// not abort it for the others.
func Detach(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// IsCanceled returns true if the context has been canceled
func IsCanceled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// IsTimedOut returns true if err or the context's error is a deadline expiry.
func IsTimedOut(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}
