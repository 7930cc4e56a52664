package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestForSharesRegistries(t *testing.T) {
	reg := prometheus.NewRegistry()

	a := For(Config{Enabled: true, Registry: reg})
	b := NewRegistry(reg)
	if a != b {
		t.Fatal("same registerer and namespace should share one Registry")
	}

	c := For(Config{Enabled: true, Registry: reg, Namespace: "frontend"})
	if c == a {
		t.Fatal("a different namespace should get its own Registry")
	}

	c.LoaderFetches.WithLabelValues("sdk").Inc()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "frontend_loader_fetches_total" {
			found = true
		}
	}
	if !found {
		t.Error("namespaced metric not registered")
	}
}

func TestForConstLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := For(Config{Enabled: true, Registry: reg, Labels: prometheus.Labels{"app": "console"}})

	r.TimingCalls.WithLabelValues("throttle", "scroll").Inc()
	if got := testutil.ToFloat64(r.TimingCalls.WithLabelValues("throttle", "scroll")); got != 1 {
		t.Errorf("calls = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(r.TimingCalls); n != 1 {
		t.Errorf("collected %d series, want 1", n)
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry == nil {
		t.Fatal("DefaultRegistry should be initialized")
	}
	if For(DefaultConfig()) != DefaultRegistry {
		t.Error("DefaultConfig should resolve to DefaultRegistry")
	}
}
