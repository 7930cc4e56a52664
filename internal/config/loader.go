package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	skerrors "github.com/vnykmshr/shellkit/pkg/common/errors"
	"github.com/vnykmshr/shellkit/pkg/common/validation"
	"github.com/vnykmshr/shellkit/pkg/loader"
	"github.com/vnykmshr/shellkit/pkg/metrics"
)

// EnvPrefix prefixes environment overrides, e.g. SHELLKIT_LOADER_KEY.
const EnvPrefix = "SHELLKIT"

// ConfigName is the file name searched for when no file is given.
const ConfigName = "shellkit"

const module = "config"

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every key with its default. Keys must be known to
// viper for AutomaticEnv to reach them during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("loader.base_url", loader.DefaultBaseURL)
	v.SetDefault("loader.version", loader.DefaultVersion)
	v.SetDefault("loader.key", "")
	v.SetDefault("loader.callback", loader.DefaultCallback)
	v.SetDefault("loader.timeout", loader.DefaultTimeout)
	v.SetDefault("loader.retry_on_failure", false)
	v.SetDefault("loader.max_bytes", loader.DefaultMaxBytes)
	v.SetDefault("loader.user_agent", "shellkit")
	v.SetDefault("loader.ready_check", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", loader.DefaultRedisPrefix)
	v.SetDefault("redis.ttl", loader.DefaultRedisTTL)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", metrics.DefaultNamespace)

	v.SetDefault("server.addr", "localhost:8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.burst", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads file into v, or searches ./config, the user config directory
// and the working directory for shellkit.yaml when file is empty. A missing
// file is not an error unless it was named explicitly.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, ConfigName))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return Decode(v)
}

// Decode unmarshals v into a validated Config.
func Decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the components would otherwise reject later with
// less context.
func (c *Config) Validate() error {
	if err := validation.ValidateURL(module, "loader.base_url", c.Loader.BaseURL); err != nil {
		return err
	}
	if err := validation.ValidatePositive(module, "loader.max_bytes", c.Loader.MaxBytes); err != nil {
		return err
	}
	if c.Redis.Enabled {
		if err := validation.ValidateNotEmpty(module, "redis.addr", c.Redis.Addr); err != nil {
			return err
		}
		if err := validation.ValidateNonNegativeDuration(module, "redis.ttl", c.Redis.TTL); err != nil {
			return err
		}
	}
	if c.Server.RateLimit < 0 {
		return skerrors.NewValidationError(module, "server.rate_limit", c.Server.RateLimit, "cannot be negative").
			WithHint("use 0 to disable rate limiting")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return skerrors.NewValidationError(module, "log.format", c.Log.Format, "unsupported format").
			WithHint("use console or json")
	}
	return nil
}
