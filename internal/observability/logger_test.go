package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		opts    LogOptions
		level   zapcore.Level
		wantErr bool
	}{
		{"defaults", LogOptions{}, zapcore.InfoLevel, false},
		{"json debug", LogOptions{Level: "debug", Format: "json"}, zapcore.DebugLevel, false},
		{"warning alias", LogOptions{Level: "warning"}, zapcore.WarnLevel, false},
		{"upper case", LogOptions{Level: "ERROR", Format: "CONSOLE"}, zapcore.ErrorLevel, false},
		{"bad level", LogOptions{Level: "loud"}, 0, true},
		{"bad format", LogOptions{Format: "xml"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestInitCLILoggerVerbose(t *testing.T) {
	prev := CLILogger
	t.Cleanup(func() { CLILogger = prev })

	require.NoError(t, InitCLILogger(LogOptions{Level: "error"}, true))
	assert.True(t, CLILogger.Core().Enabled(zap.DebugLevel))

	assert.Error(t, InitCLILogger(LogOptions{Format: "xml"}, false))
}
