package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vnykmshr/shellkit/internal/config"
	"github.com/vnykmshr/shellkit/internal/observability"
	"github.com/vnykmshr/shellkit/pkg/loader"
	"github.com/vnykmshr/shellkit/pkg/metrics"
)

// runtime holds what a command built from configuration and must release.
type runtime struct {
	loader   *loader.Loader
	registry *prometheus.Registry
	redis    *redis.Client
}

func (r *runtime) Close() {
	if r.redis != nil {
		_ = r.redis.Close()
	}
}

// buildRuntime wires the loader described by cfg and installs it as the
// process-wide default.
func buildRuntime(cfg *config.Config) (*runtime, error) {
	rt := &runtime{}
	logger := observability.CLILogger

	fetcher, err := loader.NewHTTPFetcher(loader.HTTPConfig{
		MaxBytes:  cfg.Loader.MaxBytes,
		UserAgent: cfg.Loader.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	ep := cfg.Loader.Endpoint()
	lc := loader.Config{
		Endpoint:       ep,
		Fetcher:        fetcher,
		Timeout:        cfg.Loader.Timeout,
		RetryOnFailure: cfg.Loader.RetryOnFailure,
		Name:           "default",
		Logger:         logger,
	}
	if cfg.Loader.ReadyCheck {
		lc.Validate = ep.ReadyCheck()
	}

	if cfg.Metrics.Enabled {
		rt.registry = prometheus.NewRegistry()
		lc.Metrics = metrics.Config{
			Enabled:   true,
			Registry:  rt.registry,
			Namespace: cfg.Metrics.Namespace,
		}
	}

	if cfg.Redis.Enabled {
		rt.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache, err := loader.NewRedisCache(loader.RedisConfig{
			Client: rt.redis,
			Prefix: cfg.Redis.Prefix,
			TTL:    cfg.Redis.TTL,
		})
		if err != nil {
			rt.Close()
			return nil, err
		}
		lc.Cache = cache
		logger.Debug("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	l, err := loader.New(lc)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.loader = l
	loader.SetDefault(l)
	return rt, nil
}
