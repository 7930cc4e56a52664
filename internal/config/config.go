// Package config loads shellkit CLI configuration from a YAML file,
// SHELLKIT_* environment variables and built-in defaults, in that order of
// precedence from last to first.
package config

import (
	"time"

	"github.com/vnykmshr/shellkit/pkg/loader"
)

// Config is the root configuration.
type Config struct {
	Loader  LoaderConfig  `mapstructure:"loader"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// LoaderConfig describes the external resource and how to fetch it.
type LoaderConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Version        string        `mapstructure:"version"`
	Key            string        `mapstructure:"key"`
	Callback       string        `mapstructure:"callback"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RetryOnFailure bool          `mapstructure:"retry_on_failure"`
	MaxBytes       int64         `mapstructure:"max_bytes"`
	UserAgent      string        `mapstructure:"user_agent"`
	ReadyCheck     bool          `mapstructure:"ready_check"`
}

// RedisConfig enables the shared resource cache.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// MetricsConfig controls Prometheus instrumentation.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// ServerConfig configures `shellkit serve`.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	Burst           int           `mapstructure:"burst"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Endpoint returns the loader endpoint described by c.
func (c LoaderConfig) Endpoint() loader.Endpoint {
	return loader.Endpoint{
		BaseURL:  c.BaseURL,
		Version:  c.Version,
		Key:      c.Key,
		Callback: c.Callback,
	}
}
