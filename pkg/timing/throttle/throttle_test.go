package throttle

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/shellkit/internal/testutil"
	"github.com/vnykmshr/shellkit/pkg/common/errors"
	"github.com/vnykmshr/shellkit/pkg/metrics"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// recorder collects the mock-clock offsets at which the action ran.
type recorder struct {
	mu    sync.Mutex
	clock *testutil.MockClock
	at    []time.Duration
}

func (r *recorder) action() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.at = append(r.at, r.clock.Now().Sub(epoch))
}

func (r *recorder) times() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.at...)
}

func newMocked(t *testing.T, interval time.Duration) (*Throttler, *testutil.MockClock, *recorder) {
	t.Helper()
	clock := testutil.NewMockClock(epoch)
	rec := &recorder{clock: clock}
	th, err := NewWithConfig(Config{Interval: interval, Clock: clock}, rec.action)
	require.NoError(t, err)
	return th, clock, rec
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestNewSafe(t *testing.T) {
	th, err := NewSafe(200*time.Millisecond, func() {})
	require.NoError(t, err)
	assert.Equal(t, 200*time.Millisecond, th.Interval())
	assert.False(t, th.Pending())
	_, started := th.WindowStart()
	assert.False(t, started)

	_, err = NewSafe(time.Second, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = NewWithConfig(Config{Interval: time.Second, PollInterval: -time.Millisecond}, func() {})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	assert.Panics(t, func() { New(time.Second, nil) })
	assert.Panics(t, func() { Func[int](nil, time.Second, 1) })
}

func TestFirstCallExecutesImmediately(t *testing.T) {
	th, _, rec := newMocked(t, 200*time.Millisecond)

	th.Call()
	assert.Equal(t, []time.Duration{0}, rec.times())
	assert.False(t, th.Pending())

	start, started := th.WindowStart()
	assert.True(t, started)
	assert.Equal(t, epoch, start)
}

func TestScenario(t *testing.T) {
	th, clock, rec := newMocked(t, 200*time.Millisecond)

	th.Call() // t=0 executes
	clock.Advance(ms(50))
	th.Call() // t=50 deferred
	assert.True(t, th.Pending())

	clock.Advance(ms(160)) // t=210, the deferred call ran at t=200
	assert.Equal(t, []time.Duration{0, ms(200)}, rec.times())
	assert.False(t, th.Pending())

	th.Call() // t=210 deferred until the window opened at 200 elapses
	clock.Advance(ms(199))
	assert.Len(t, rec.times(), 2)
	clock.Advance(ms(1))
	assert.Equal(t, []time.Duration{0, ms(200), ms(410)}, rec.times())
}

func TestBoundaryCallExecutesImmediately(t *testing.T) {
	th, clock, rec := newMocked(t, 200*time.Millisecond)

	th.Call()
	clock.Advance(ms(200))
	th.Call()

	assert.Equal(t, []time.Duration{0, ms(200)}, rec.times())
	assert.False(t, th.Pending())
	assert.Equal(t, 0, clock.PendingTimers())
}

func TestCallsInsideWindowCoalesce(t *testing.T) {
	th, clock, rec := newMocked(t, 200*time.Millisecond)

	th.Call()
	for i := 0; i < 5; i++ {
		clock.Advance(ms(10))
		th.Call()
		assert.Equal(t, 1, clock.PendingTimers(), "at most one pending retry")
	}

	clock.Advance(time.Second)
	assert.Equal(t, []time.Duration{0, ms(200)}, rec.times())
}

func TestRetryPollsOnFixedInterval(t *testing.T) {
	th, clock, rec := newMocked(t, 120*time.Millisecond)

	th.Call()
	clock.Advance(ms(5))
	th.Call() // polls at 55, 105, 155

	clock.Advance(ms(100)) // t=105, elapsed 105 < 120
	assert.Len(t, rec.times(), 1)
	assert.True(t, th.Pending())

	clock.Advance(ms(50))
	assert.Equal(t, []time.Duration{0, ms(155)}, rec.times())
}

func TestCustomPollInterval(t *testing.T) {
	clock := testutil.NewMockClock(epoch)
	rec := &recorder{clock: clock}
	th, err := NewWithConfig(Config{
		Interval:     100 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
		Clock:        clock,
	}, rec.action)
	require.NoError(t, err)

	th.Call()
	clock.Advance(ms(1))
	th.Call()
	clock.Advance(time.Second)

	assert.Equal(t, []time.Duration{0, ms(101)}, rec.times())
}

func TestNonPositiveIntervalRunsEveryCall(t *testing.T) {
	th, _, rec := newMocked(t, 0)

	th.Call()
	th.Call()
	th.Call()

	assert.Len(t, rec.times(), 3)
	assert.False(t, th.Pending())
}

func TestExecutionsNeverCloserThanInterval(t *testing.T) {
	const interval = 200 * time.Millisecond
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		th, clock, rec := newMocked(t, interval)

		var lastCall time.Duration
		for i := 0; i < 100; i++ {
			clock.Advance(ms(rng.Intn(120)))
			th.Call()
			lastCall = clock.Now().Sub(epoch)
		}
		clock.Advance(time.Second)

		times := rec.times()
		require.NotEmpty(t, times)
		assert.Equal(t, time.Duration(0), times[0])
		for i := 1; i < len(times); i++ {
			assert.GreaterOrEqual(t, times[i]-times[i-1], interval)
		}
		assert.GreaterOrEqual(t, times[len(times)-1], lastCall, "the last call is never lost")
		assert.False(t, th.Pending())
	}
}

func TestFuncBindsArgumentsOnce(t *testing.T) {
	var mu sync.Mutex
	var got []string

	call := Func(func(s string) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	}, 0, "bound")

	call()
	call()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"bound", "bound"}, got)
}

func TestImmediateExecutionPanicsPropagate(t *testing.T) {
	clock := testutil.NewMockClock(epoch)
	th, err := NewWithConfig(Config{Interval: time.Hour, Clock: clock}, func() { panic("boom") })
	require.NoError(t, err)

	assert.PanicsWithValue(t, "boom", th.Call)
	// the window still opened, so the next call is deferred, not executed
	th.Call()
	assert.True(t, th.Pending())
}

func TestActionMayCallBack(t *testing.T) {
	clock := testutil.NewMockClock(epoch)
	count := 0

	var th *Throttler
	th, err := NewWithConfig(Config{Interval: 100 * time.Millisecond, Clock: clock}, func() {
		count++
		if count == 1 {
			th.Call()
		}
	})
	require.NoError(t, err)

	th.Call()
	assert.Equal(t, 1, count)
	assert.True(t, th.Pending())

	clock.Advance(ms(100))
	assert.Equal(t, 2, count)
}

func TestDeferredCallWithSystemClock(t *testing.T) {
	done := make(chan time.Time, 2)
	th := New(100*time.Millisecond, func() { done <- time.Now() })

	start := time.Now()
	th.Call()
	th.Call()

	first := <-done
	select {
	case second := <-done:
		assert.GreaterOrEqual(t, second.Sub(first), 100*time.Millisecond)
		assert.Less(t, second.Sub(start), time.Second)
	case <-time.After(2 * time.Second):
		t.Fatal("deferred call did not run")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	clock := testutil.NewMockClock(epoch)
	th, err := NewWithConfig(Config{
		Interval: 200 * time.Millisecond,
		Clock:    clock,
		Name:     "scroll",
		Metrics:  metrics.Config{Enabled: true, Registry: reg},
	}, func() {})
	require.NoError(t, err)

	th.Call()
	clock.Advance(ms(10))
	th.Call()
	clock.Advance(ms(10))
	th.Call()
	clock.Advance(time.Second)

	r := metrics.For(metrics.Config{Enabled: true, Registry: reg})
	assert.Equal(t, 3.0, promtest.ToFloat64(r.TimingCalls.WithLabelValues("throttle", "scroll")))
	assert.Equal(t, 2.0, promtest.ToFloat64(r.TimingExecutions.WithLabelValues("throttle", "scroll")))
	assert.Equal(t, 2.0, promtest.ToFloat64(r.TimingDeferred.WithLabelValues("throttle", "scroll")))
	assert.Equal(t, 1.0, promtest.ToFloat64(r.TimingSuperseded.WithLabelValues("throttle", "scroll")))
	assert.Equal(t, 0.0, promtest.ToFloat64(r.TimingPending.WithLabelValues("throttle", "scroll")))
}
