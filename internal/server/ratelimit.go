package server

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/vnykmshr/shellkit/pkg/timing"
)

// tokenBucket admits bursts of up to burst requests and refills at rate
// tokens per second.
type tokenBucket struct {
	clock timing.Clock
	rate  float64
	burst float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

func newTokenBucket(rate float64, burst int, clock timing.Clock) *tokenBucket {
	if burst < 1 {
		burst = 1
	}
	if clock == nil {
		clock = timing.SystemClock{}
	}
	return &tokenBucket{
		clock:  clock,
		rate:   rate,
		burst:  float64(burst),
		tokens: float64(burst),
		last:   clock.Now(),
	}
}

// Allow takes one token if available.
func (b *tokenBucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	if elapsed := now.Sub(b.last); elapsed > 0 {
		b.tokens = min(b.burst, b.tokens+elapsed.Seconds()*b.rate)
		b.last = now
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// retryAfter is the wait until the next token, rounded up to whole seconds.
func (b *tokenBucket) retryAfter() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	secs := (1 - b.tokens) / b.rate
	if secs < 1 {
		return 1
	}
	return int(secs + 0.999)
}

func rateLimit(b *tokenBucket) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !b.Allow() {
				w.Header().Set("Retry-After", strconv.Itoa(b.retryAfter()))
				writeJSON(w, http.StatusTooManyRequests, errorResponse{
					Error:     "rate limit exceeded",
					RequestID: GetRequestID(r.Context()),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
