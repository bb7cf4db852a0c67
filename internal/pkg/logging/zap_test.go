package logging

import (
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	helper := log.NewHelper(log.With(logger, "module", "bloom"))
	helper.Infof("added %d items", 3)
	helper.Debug("debug line")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "bloom", entries[0].ContextMap()["module"])
	assert.Equal(t, "added 3 items", entries[0].ContextMap()["msg"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestZapLogger_OddKeyvals(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	require.NoError(t, logger.Log(log.LevelInfo, "lonely"))
	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "defaults"},
		{name: "debug console", level: "debug", format: FormatConsole},
		{name: "warn json", level: "warn", format: "JSON"},
		{name: "bad level", level: "loud", wantErr: true},
		{name: "bad format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.level, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}
