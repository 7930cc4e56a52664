package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for shellkit components.
type Registry struct {
	// Timing Metrics
	TimingCalls      *prometheus.CounterVec
	TimingExecutions *prometheus.CounterVec
	TimingSuperseded *prometheus.CounterVec
	TimingDeferred   *prometheus.CounterVec
	TimingPending    *prometheus.GaugeVec

	// Loader Metrics
	LoaderRequests  *prometheus.CounterVec
	LoaderFetches   *prometheus.CounterVec
	LoaderFailures  *prometheus.CounterVec
	LoaderCacheHits *prometheus.CounterVec
	LoaderDuration  *prometheus.HistogramVec
}

// DefaultRegistry is the default metrics registry used by shellkit components.
var DefaultRegistry *Registry

type registryKey struct {
	reg       prometheus.Registerer
	namespace string
}

var (
	registriesMu sync.Mutex
	registries   = map[registryKey]*Registry{}
)

func init() {
	DefaultRegistry = For(DefaultConfig())
}

// For returns the Registry for cfg, creating it on first use. Components
// sharing a registerer and namespace share one Registry, so constructing many
// instrumented components never registers a collector twice. It returns nil
// when metrics are disabled.
func For(cfg Config) *Registry {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	registriesMu.Lock()
	defer registriesMu.Unlock()

	key := registryKey{reg: cfg.Registry, namespace: cfg.Namespace}
	if r, ok := registries[key]; ok {
		return r
	}
	r := newRegistry(cfg.Registry, cfg.Namespace, cfg.Labels)
	registries[key] = r
	return r
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return For(Config{Enabled: true, Registry: reg})
}

func newRegistry(reg prometheus.Registerer, namespace string, labels prometheus.Labels) *Registry {
	factory := promauto.With(reg)
	timingLabels := []string{"kind", "name"}
	loaderLabels := []string{"loader_name"}

	return &Registry{
		// Timing Metrics
		TimingCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "timing",
				Name:        "calls_total",
				Help:        "Total number of calls made to debounced or throttled functions",
				ConstLabels: labels,
			},
			timingLabels,
		),

		TimingExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "timing",
				Name:        "executions_total",
				Help:        "Total number of times the wrapped action ran",
				ConstLabels: labels,
			},
			timingLabels,
		),

		TimingSuperseded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "timing",
				Name:        "superseded_total",
				Help:        "Total number of pending executions canceled by a newer call",
				ConstLabels: labels,
			},
			timingLabels,
		),

		TimingDeferred: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "timing",
				Name:        "deferred_total",
				Help:        "Total number of executions scheduled for later",
				ConstLabels: labels,
			},
			timingLabels,
		),

		TimingPending: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Subsystem:   "timing",
				Name:        "pending",
				Help:        "Whether an execution is currently scheduled (0 or 1)",
				ConstLabels: labels,
			},
			timingLabels,
		),

		// Loader Metrics
		LoaderRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "loader",
				Name:        "requests_total",
				Help:        "Total number of Load calls by outcome",
				ConstLabels: labels,
			},
			[]string{"loader_name", "outcome"},
		),

		LoaderFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "loader",
				Name:        "fetches_total",
				Help:        "Total number of underlying fetches issued",
				ConstLabels: labels,
			},
			loaderLabels,
		),

		LoaderFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "loader",
				Name:        "failures_total",
				Help:        "Total number of loads that failed",
				ConstLabels: labels,
			},
			loaderLabels,
		),

		LoaderCacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "loader",
				Name:        "cache_hits_total",
				Help:        "Total number of loads served from the shared cache",
				ConstLabels: labels,
			},
			loaderLabels,
		),

		LoaderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Subsystem:   "loader",
				Name:        "load_duration_seconds",
				Help:        "Time spent loading the external resource",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: labels,
			},
			loaderLabels,
		),
	}
}
