// Package metrics provides Prometheus instrumentation for shellkit components.
//
// # Overview
//
// The metrics package instruments:
//   - Timing wrappers (calls, executions, superseded and deferred executions)
//   - Resource loaders (requests by outcome, fetches, failures, cache hits, load time)
//
// # Quick Start
//
// Pass a metrics Config to a component's Config:
//
//	d, _ := debounce.NewWithConfig(debounce.Config{
//		Delay:   300 * time.Millisecond,
//		Name:    "search_box",
//		Metrics: metrics.DefaultConfig(),
//	}, search)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
// Components built with the same registerer and namespace share one Registry;
// For never registers a collector twice.
//
// # Available Metrics
//
// ## Timing Metrics
//
//   - shellkit_timing_calls_total: Calls made to debounced or throttled functions
//   - shellkit_timing_executions_total: Times the wrapped action ran
//   - shellkit_timing_superseded_total: Pending executions canceled by a newer call
//   - shellkit_timing_deferred_total: Executions scheduled for later
//   - shellkit_timing_pending: Whether an execution is scheduled
//
// ## Loader Metrics
//
//   - shellkit_loader_requests_total: Load calls by outcome (ready, loaded, failed, canceled)
//   - shellkit_loader_fetches_total: Underlying fetches issued
//   - shellkit_loader_failures_total: Loads that failed
//   - shellkit_loader_cache_hits_total: Loads served from the shared cache
//   - shellkit_loader_load_duration_seconds: Time spent loading
//
// # Labels
//
//   - kind: "debounce" or "throttle"
//   - name: User-provided name for the wrapper instance
//   - loader_name: User-provided name for the loader instance
//   - outcome: Result of a Load call
package metrics
