package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		json      bool
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{name: "info_json", level: "info", json: true, wantLevel: zapcore.InfoLevel},
		{name: "debug_console", level: "debug", json: false, wantLevel: zapcore.DebugLevel},
		{name: "upper_case", level: "WARN", json: true, wantLevel: zapcore.WarnLevel},
		{name: "invalid", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.json)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
		})
	}
}

func TestMust_Panics(t *testing.T) {
	assert.Panics(t, func() {
		Must(New("nope", true))
	})
}

func TestNamed_NilBase(t *testing.T) {
	logger := Named(nil, "svc.schedule")
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))

	child := Named(zap.NewExample(), "svc.schedule")
	assert.NotNil(t, child)
}
