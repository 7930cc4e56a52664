package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	skcontext "github.com/vnykmshr/shellkit/pkg/common/context"
	skerrors "github.com/vnykmshr/shellkit/pkg/common/errors"
	"github.com/vnykmshr/shellkit/pkg/common/validation"
	"github.com/vnykmshr/shellkit/pkg/metrics"
)

const module = "loader"

// DefaultTimeout bounds a single load attempt.
const DefaultTimeout = 30 * time.Second

// NoTimeout disables the load deadline when set as Config.Timeout.
const NoTimeout time.Duration = -1

// Config holds configuration options for creating a new Loader.
type Config struct {
	// Endpoint describes the resource. Ignored when URL is set.
	Endpoint Endpoint

	// URL overrides the URL rendered from Endpoint.
	URL string

	// Fetcher retrieves the resource. If nil, an HTTPFetcher with default
	// settings is used.
	Fetcher Fetcher

	// Cache is consulted before fetching and filled afterwards. Optional.
	Cache Cache

	// Validate rejects a fetched resource, failing the load. Optional; see
	// Endpoint.ReadyCheck.
	Validate func(*Resource) error

	// Timeout bounds each load attempt (default: 30s). NoTimeout disables it.
	Timeout time.Duration

	// RetryOnFailure lets the next Load start a new attempt after a failure.
	// When false a failure is terminal until Reset.
	RetryOnFailure bool

	// Name labels logs and metrics. Defaults to "loader".
	Name string

	// Logger receives load lifecycle events. If nil, logging is disabled.
	Logger *zap.Logger

	// Metrics controls Prometheus instrumentation.
	Metrics metrics.Config
}

type state int

const (
	stateIdle state = iota
	stateLoading
	stateLoaded
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateLoading:
		return "loading"
	case stateLoaded:
		return "loaded"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// attempt is one in-flight load. Every caller that joins it waits on done and
// then reads res and err, which are written before done is closed.
type attempt struct {
	done    chan struct{}
	res     *Resource
	err     error
	settled bool
}

// Loader loads a resource once and shares it with every caller. It is safe
// for concurrent use.
type Loader struct {
	url      string
	fetcher  Fetcher
	cache    Cache
	validate func(*Resource) error
	timeout  time.Duration
	retry    bool
	name     string
	logger   *zap.Logger
	rec      recorder

	mu        sync.Mutex
	state     state
	res       *Resource
	err       error
	current   *attempt
	listeners []func(*Resource, error)
}

// New creates a Loader from config.
func New(config Config) (*Loader, error) {
	url := config.URL
	if url == "" {
		if err := config.Endpoint.Validate(); err != nil {
			return nil, err
		}
		url = config.Endpoint.URL()
	} else if err := validation.ValidateURL(module, "url", url); err != nil {
		return nil, err
	}

	if config.Fetcher == nil {
		f, err := NewHTTPFetcher(HTTPConfig{})
		if err != nil {
			return nil, err
		}
		config.Fetcher = f
	}
	switch {
	case config.Timeout == 0:
		config.Timeout = DefaultTimeout
	case config.Timeout < 0:
		config.Timeout = 0
	}
	if config.Name == "" {
		config.Name = module
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &Loader{
		url:      url,
		fetcher:  config.Fetcher,
		cache:    config.Cache,
		validate: config.Validate,
		timeout:  config.Timeout,
		retry:    config.RetryOnFailure,
		name:     config.Name,
		logger:   config.Logger.With(zap.String("loader", config.Name)),
		rec:      newRecorder(config.Metrics, config.Name),
	}, nil
}

// URL returns the URL the Loader requests.
func (l *Loader) URL() string {
	return l.url
}

// Load returns the resource, starting a load if none has been started. All
// callers share one attempt. If ctx ends first, Load returns ctx.Err() and the
// attempt continues for the others.
func (l *Loader) Load(ctx context.Context) (*Resource, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	l.mu.Lock()
	switch l.state {
	case stateLoaded:
		res := l.res
		l.mu.Unlock()
		l.rec.request(outcomeReady)
		return res, nil
	case stateFailed:
		err := l.err
		l.mu.Unlock()
		l.rec.request(outcomeFailed)
		return nil, err
	case stateIdle:
		l.start(ctx)
	}
	a := l.current
	l.mu.Unlock()

	select {
	case <-a.done:
		if a.err != nil {
			l.rec.request(outcomeFailed)
			return nil, a.err
		}
		l.rec.request(outcomeLoaded)
		return a.res, nil
	case <-ctx.Done():
		l.rec.request(outcomeCanceled)
		return nil, ctx.Err()
	}
}

// start begins a new attempt. Must be called with l.mu held.
func (l *Loader) start(ctx context.Context) {
	a := &attempt{done: make(chan struct{})}
	l.state = stateLoading
	l.current = a

	l.logger.Info("loading resource", zap.String("url", redact(l.url)))
	go l.run(ctx, a)
}

func (l *Loader) run(parent context.Context, a *attempt) {
	ctx, cancel := skcontext.Detach(parent, l.timeout)
	defer cancel()

	begin := time.Now()
	res, err := l.load(ctx)
	elapsed := time.Since(begin)
	l.rec.duration(elapsed)

	if err != nil {
		l.rec.failure()
		l.logger.Warn("resource load failed", zap.Error(err), zap.Duration("elapsed", elapsed))
	} else {
		l.logger.Info("resource loaded",
			zap.String("source", string(res.Source)),
			zap.Int("bytes", res.Size()),
			zap.Duration("elapsed", elapsed))
	}
	l.settle(a, res, err)
}

func (l *Loader) load(ctx context.Context) (*Resource, error) {
	if l.cache != nil {
		res, err := l.cache.Get(ctx, l.url)
		switch {
		case err == nil:
			l.rec.cacheHit()
			return res, nil
		case !errors.Is(err, ErrCacheMiss):
			l.logger.Warn("cache lookup failed", zap.Error(err))
		}
	}

	l.rec.fetch()
	res, err := l.fetcher.Fetch(ctx, l.url)
	if err != nil {
		if skcontext.IsTimedOut(ctx, err) {
			return nil, fmt.Errorf("%w: %w: %w", skerrors.ErrLoadFailed, skerrors.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", skerrors.ErrLoadFailed, err)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: fetcher returned no resource", skerrors.ErrLoadFailed)
	}
	if l.validate != nil {
		if err := l.validate(res); err != nil {
			return nil, fmt.Errorf("%w: %w", skerrors.ErrLoadFailed, err)
		}
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, l.url, res); err != nil {
			l.logger.Warn("cache write failed", zap.Error(err))
		}
	}
	return res, nil
}

// settle records the outcome of a, runs the ready listeners and then wakes
// the waiters. An attempt orphaned by Reset, or already settled by Provide,
// leaves the Loader state alone.
func (l *Loader) settle(a *attempt, res *Resource, err error) {
	l.mu.Lock()
	if a.settled {
		l.mu.Unlock()
		return
	}
	a.settled = true
	a.res, a.err = res, err

	var listeners []func(*Resource, error)
	if l.current == a {
		l.current = nil
		switch {
		case err == nil:
			l.state = stateLoaded
			l.res = res
			l.err = nil
		case l.retry:
			l.state = stateIdle
		default:
			l.state = stateFailed
			l.err = err
		}
		listeners = l.listeners
		l.listeners = nil
	}
	l.mu.Unlock()
	defer close(a.done)

	for _, fn := range listeners {
		fn(res, err)
	}
}

// Provide marks a copy of res as the loaded resource, for when it became
// available through another path. It clears a terminal failure. Waiters on an
// in-flight attempt receive the copy and the attempt's own result is
// discarded. It returns false, and changes nothing, if a resource was already
// loaded.
func (l *Loader) Provide(res *Resource) bool {
	if res == nil {
		return false
	}
	provided := *res
	if provided.Source == "" {
		provided.Source = SourceProvided
	}
	res = &provided

	l.mu.Lock()
	if l.state == stateLoaded {
		l.mu.Unlock()
		return false
	}

	a := l.current
	if a == nil {
		// loading until settle below, so a concurrent Load waits on a
		// instead of starting a fetch
		a = &attempt{done: make(chan struct{})}
		l.state = stateLoading
		l.current = a
	}
	l.mu.Unlock()

	l.settle(a, res, nil)
	l.logger.Info("resource provided", zap.Int("bytes", res.Size()))
	return true
}

// OnReady registers fn to run once the load settles, before Load callers
// waiting on it return. If it already has settled, fn runs immediately in the
// caller's goroutine. Registering a listener does not start a load.
func (l *Loader) OnReady(fn func(*Resource, error)) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	switch l.state {
	case stateLoaded:
		res := l.res
		l.mu.Unlock()
		fn(res, nil)
	case stateFailed:
		err := l.err
		l.mu.Unlock()
		fn(nil, err)
	default:
		l.listeners = append(l.listeners, fn)
		l.mu.Unlock()
	}
}

// Loaded reports whether the resource is available.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == stateLoaded
}

// Resource returns the loaded resource, and false if there is none yet.
func (l *Loader) Resource() (*Resource, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.res, l.state == stateLoaded
}

// Err returns the terminal load error, or nil.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Reset returns the Loader to idle, dropping the loaded resource, a terminal
// error and pending listeners. Callers already waiting on an in-flight attempt
// still receive its result, but it is not recorded.
func (l *Loader) Reset() {
	l.mu.Lock()
	prev := l.state
	l.state = stateIdle
	l.res = nil
	l.err = nil
	l.current = nil
	l.listeners = nil
	l.mu.Unlock()

	l.logger.Debug("loader reset", zap.Stringer("previous_state", prev))
}

// Invalidate resets the Loader and removes the resource from the cache.
func (l *Loader) Invalidate(ctx context.Context) error {
	l.Reset()
	if l.cache == nil {
		return nil
	}
	if err := l.cache.Delete(ctx, l.url); err != nil {
		return skerrors.NewOperationError(module, "Invalidate", err)
	}
	return nil
}
