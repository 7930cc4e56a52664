package observability

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLILogger is used by CLI commands. It discards everything until
// InitCLILogger runs.
var CLILogger = zap.NewNop()

// LogOptions selects the level and encoding of a logger.
type LogOptions struct {
	Level  string // debug, info, warn, error
	Format string // console or json
}

// NewLogger builds a zap logger writing to stderr.
func NewLogger(opts LogOptions) (*zap.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	switch strings.ToLower(opts.Format) {
	case "", "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.DisableStacktrace = true
	case "json":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("unsupported log format: %s", opts.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// InitCLILogger replaces CLILogger. Verbose forces the debug level.
func InitCLILogger(opts LogOptions, verbose bool) error {
	if verbose {
		opts.Level = "debug"
	}
	logger, err := NewLogger(opts)
	if err != nil {
		return err
	}
	CLILogger = logger
	return nil
}

// parseLevel converts a level name, accepting "warning" and defaulting to info.
func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	}
	return zapcore.ParseLevel(s)
}
