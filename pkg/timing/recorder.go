package timing

import (
	"github.com/vnykmshr/shellkit/pkg/metrics"
)

// Recorder reports timing wrapper activity to a metrics Registry. The zero
// value and a Recorder built from a disabled Config record nothing.
type Recorder struct {
	registry *metrics.Registry
	kind     string
	name     string
}

// NewRecorder returns a Recorder labelled with kind ("debounce", "throttle")
// and the wrapper's name.
func NewRecorder(cfg metrics.Config, kind, name string) Recorder {
	return Recorder{
		registry: metrics.For(cfg),
		kind:     kind,
		name:     name,
	}
}

// Enabled reports whether the Recorder has a registry to write to.
func (r Recorder) Enabled() bool {
	return r.registry != nil
}

// Call records one invocation of the wrapped function.
func (r Recorder) Call() {
	if r.registry != nil {
		r.registry.TimingCalls.WithLabelValues(r.kind, r.name).Inc()
	}
}

// Execution records one run of the action.
func (r Recorder) Execution() {
	if r.registry != nil {
		r.registry.TimingExecutions.WithLabelValues(r.kind, r.name).Inc()
	}
}

// Superseded records a pending execution canceled by a newer call.
func (r Recorder) Superseded() {
	if r.registry != nil {
		r.registry.TimingSuperseded.WithLabelValues(r.kind, r.name).Inc()
	}
}

// Deferred records an execution scheduled for later.
func (r Recorder) Deferred() {
	if r.registry != nil {
		r.registry.TimingDeferred.WithLabelValues(r.kind, r.name).Inc()
	}
}

// Pending sets the pending gauge.
func (r Recorder) Pending(pending bool) {
	if r.registry == nil {
		return
	}
	v := 0.0
	if pending {
		v = 1
	}
	r.registry.TimingPending.WithLabelValues(r.kind, r.name).Set(v)
}
