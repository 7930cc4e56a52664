package loader

import (
	"context"
	"sync"
)

var (
	defaultMu     sync.Mutex
	defaultLoader *Loader
)

// DefaultConfig returns the configuration Default uses: the map SDK endpoint
// with its ready check.
func DefaultConfig() Config {
	ep := DefaultEndpoint()
	return Config{
		Endpoint: ep,
		Validate: ep.ReadyCheck(),
		Timeout:  DefaultTimeout,
		Name:     "default",
	}
}

// Default returns the process-wide Loader, creating it from DefaultConfig on
// first use.
func Default() *Loader {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLoader == nil {
		l, err := New(DefaultConfig())
		if err != nil {
			panic(err)
		}
		defaultLoader = l
	}
	return defaultLoader
}

// SetDefault replaces the process-wide Loader and returns the previous one,
// which may be nil.
func SetDefault(l *Loader) *Loader {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	prev := defaultLoader
	defaultLoader = l
	return prev
}

// Load loads the resource through the process-wide Loader.
func Load(ctx context.Context) (*Resource, error) {
	return Default().Load(ctx)
}

// ResetDefaultForTesting drops the process-wide Loader so the next Default
// builds a fresh one.
func ResetDefaultForTesting() {
	SetDefault(nil)
}
