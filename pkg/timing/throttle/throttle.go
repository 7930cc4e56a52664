package throttle

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vnykmshr/shellkit/pkg/common/validation"
	"github.com/vnykmshr/shellkit/pkg/metrics"
	"github.com/vnykmshr/shellkit/pkg/timing"
)

const module = "throttle"

// DefaultPollInterval is how often a deferred call rechecks the window.
const DefaultPollInterval = 50 * time.Millisecond

// Config holds configuration options for creating a new Throttler.
type Config struct {
	// Interval is the minimum spacing between executions. Zero or less runs
	// every call immediately.
	Interval time.Duration

	// PollInterval is the retry period for deferred calls (default: 50ms).
	PollInterval time.Duration

	// Clock provides the current time and schedules retries. If nil,
	// timing.SystemClock is used.
	Clock timing.Clock

	// Name labels logs and metrics. Defaults to "throttle".
	Name string

	// Logger receives debug output. If nil, logging is disabled.
	Logger *zap.Logger

	// Metrics controls Prometheus instrumentation.
	Metrics metrics.Config
}

// Throttler runs an action at most once per Interval, deferring and
// coalescing calls that arrive inside the window. It is safe for concurrent use.
type Throttler struct {
	interval time.Duration
	poll     time.Duration
	action   func()
	clock    timing.Clock
	name     string
	logger   *zap.Logger
	rec      timing.Recorder

	mu      sync.Mutex
	timer   timing.Timer
	gen     uint64
	start   time.Time
	started bool
}

// New creates a Throttler. It panics if action is nil; use NewSafe to get an
// error instead.
func New(interval time.Duration, action func()) *Throttler {
	t, err := NewSafe(interval, action)
	if err != nil {
		panic(err)
	}
	return t
}

// NewSafe creates a Throttler with validation that returns an error instead of panicking.
func NewSafe(interval time.Duration, action func()) (*Throttler, error) {
	return NewWithConfig(Config{Interval: interval}, action)
}

// NewWithConfig creates a Throttler from config.
func NewWithConfig(config Config, action func()) (*Throttler, error) {
	if action == nil {
		return nil, validation.ValidateNotNil(module, "action", nil)
	}
	if err := validation.ValidateNonNegativeDuration(module, "poll_interval", config.PollInterval); err != nil {
		return nil, err
	}
	if config.PollInterval == 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.Clock == nil {
		config.Clock = timing.SystemClock{}
	}
	if config.Name == "" {
		config.Name = module
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &Throttler{
		interval: config.Interval,
		poll:     config.PollInterval,
		action:   action,
		clock:    config.Clock,
		name:     config.Name,
		logger:   config.Logger,
		rec:      timing.NewRecorder(config.Metrics, module, config.Name),
	}, nil
}

// Func returns a throttled callable that invokes action with bound, which is
// captured once here. It panics if action is nil.
func Func[T any](action func(T), interval time.Duration, bound T) func() {
	if action == nil {
		panic(validation.ValidateNotNil(module, "action", nil))
	}
	return New(interval, func() { action(bound) }).Call
}

// Call runs the action now if the window allows it, otherwise defers it.
func (t *Throttler) Call() {
	t.rec.Call()
	t.run(0, true)
}

// Pending reports whether a deferred execution is scheduled.
func (t *Throttler) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// WindowStart returns the start of the current window, and false before the
// first call.
func (t *Throttler) WindowStart() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.start, t.started
}

// Interval returns the configured minimum spacing between executions.
func (t *Throttler) Interval() time.Duration {
	return t.interval
}

func (t *Throttler) retry(gen uint64) {
	t.run(gen, false)
}

// run decides between executing and deferring. Retries and calls take the
// same lock for the whole decision so a call racing a retry cannot produce an
// extra execution.
func (t *Throttler) run(gen uint64, fromCall bool) {
	t.mu.Lock()
	if !fromCall && (gen != t.gen || t.timer == nil) {
		t.mu.Unlock()
		return
	}

	now := t.clock.Now()
	first := !t.started
	if first {
		t.started = true
		t.start = now
	}

	superseded := fromCall && t.timer != nil
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++

	if first || now.Sub(t.start) >= t.interval {
		t.start = now
		t.mu.Unlock()

		if superseded {
			t.rec.Superseded()
		}
		t.rec.Pending(false)
		t.rec.Execution()
		t.logger.Debug("throttled action running",
			zap.String("name", t.name),
			zap.Bool("deferred", !fromCall))

		t.action()
		return
	}

	next := t.gen
	t.timer = t.clock.AfterFunc(t.poll, func() {
		t.retry(next)
	})
	t.mu.Unlock()

	if fromCall {
		if superseded {
			t.rec.Superseded()
		}
		t.rec.Deferred()
		t.rec.Pending(true)
	}
}
