package loader

import (
	"time"

	"github.com/vnykmshr/shellkit/pkg/metrics"
)

// Load outcomes reported on the requests counter.
const (
	outcomeReady    = "ready"
	outcomeLoaded   = "loaded"
	outcomeFailed   = "failed"
	outcomeCanceled = "canceled"
)

type recorder struct {
	registry *metrics.Registry
	name     string
}

func newRecorder(cfg metrics.Config, name string) recorder {
	return recorder{registry: metrics.For(cfg), name: name}
}

func (r recorder) request(outcome string) {
	if r.registry != nil {
		r.registry.LoaderRequests.WithLabelValues(r.name, outcome).Inc()
	}
}

func (r recorder) fetch() {
	if r.registry != nil {
		r.registry.LoaderFetches.WithLabelValues(r.name).Inc()
	}
}

func (r recorder) failure() {
	if r.registry != nil {
		r.registry.LoaderFailures.WithLabelValues(r.name).Inc()
	}
}

func (r recorder) cacheHit() {
	if r.registry != nil {
		r.registry.LoaderCacheHits.WithLabelValues(r.name).Inc()
	}
}

func (r recorder) duration(d time.Duration) {
	if r.registry != nil {
		r.registry.LoaderDuration.WithLabelValues(r.name).Observe(d.Seconds())
	}
}
