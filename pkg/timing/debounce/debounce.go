package debounce

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vnykmshr/shellkit/pkg/common/validation"
	"github.com/vnykmshr/shellkit/pkg/metrics"
	"github.com/vnykmshr/shellkit/pkg/timing"
)

const module = "debounce"

// Config holds configuration options for creating a new Debouncer.
type Config struct {
	// Delay is the quiet period that must follow the last call before the
	// action runs. Zero defers to the next timer tick.
	Delay time.Duration

	// Clock schedules executions. If nil, timing.SystemClock is used.
	Clock timing.Clock

	// Name labels logs and metrics. Defaults to "debounce".
	Name string

	// Logger receives debug output. If nil, logging is disabled.
	Logger *zap.Logger

	// Metrics controls Prometheus instrumentation.
	Metrics metrics.Config
}

// Debouncer delays invoking an action until Delay has elapsed since the most
// recent Call. It is safe for concurrent use.
type Debouncer[T any] struct {
	delay  time.Duration
	action func(T)
	clock  timing.Clock
	name   string
	logger *zap.Logger
	rec    timing.Recorder

	mu    sync.Mutex
	timer timing.Timer
	gen   uint64
}

// New creates a Debouncer. It panics if delay is negative or action is nil;
// use NewSafe to get an error instead.
func New[T any](delay time.Duration, action func(T)) *Debouncer[T] {
	d, err := NewSafe(delay, action)
	if err != nil {
		panic(err)
	}
	return d
}

// NewSafe creates a Debouncer with validation that returns an error instead of panicking.
func NewSafe[T any](delay time.Duration, action func(T)) (*Debouncer[T], error) {
	return NewWithConfig(Config{Delay: delay}, action)
}

// NewWithConfig creates a Debouncer from config.
func NewWithConfig[T any](config Config, action func(T)) (*Debouncer[T], error) {
	if err := validation.ValidateNonNegativeDuration(module, "delay", config.Delay); err != nil {
		return nil, err
	}
	if action == nil {
		return nil, validation.ValidateNotNil(module, "action", nil)
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

	return &Debouncer[T]{
		delay:  config.Delay,
		action: action,
		clock:  config.Clock,
		name:   config.Name,
		logger: config.Logger,
		rec:    timing.NewRecorder(config.Metrics, module, config.Name),
	}, nil
}

// Func returns a debounced callable for action. It panics under the same
// conditions as New.
func Func[T any](action func(T), delay time.Duration) func(T) {
	return New(delay, action).Call
}

// Call schedules action(arg) to run after the delay, superseding any
// execution scheduled by an earlier call.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	superseded := d.timer != nil
	if superseded {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(gen, arg)
	})
	d.mu.Unlock()

	d.rec.Call()
	d.rec.Deferred()
	if superseded {
		d.rec.Superseded()
	}
	d.rec.Pending(true)
}

// Pending reports whether an execution is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Delay returns the configured quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// fire runs the action unless a newer call has replaced the timer that
// scheduled it. A timer that fired while Call held the lock would otherwise
// run the superseded argument.
func (d *Debouncer[T]) fire(gen uint64, arg T) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.rec.Pending(false)
	d.rec.Execution()
	d.logger.Debug("debounced action firing",
		zap.String("name", d.name),
		zap.Duration("delay", d.delay))

	d.action(arg)
}
