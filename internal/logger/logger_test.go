package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "console output", opts: Options{}},
		{name: "json output", opts: Options{JSON: true}},
		{name: "verbose console", opts: Options{Verbose: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvVar, "")
			require.NoError(t, Initialize(tt.opts))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.opts.JSON, JSONOutput)
			assert.Equal(t, tt.opts.Verbose, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestProductionSuppressesInfo(t *testing.T) {
	t.Setenv(EnvVar, "production")
	require.NoError(t, Initialize(Options{}))

	core := Logger.Desugar().Core()
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.WarnLevel))
}

func TestIsProduction(t *testing.T) {
	t.Setenv(EnvVar, "Prod")
	assert.True(t, IsProduction())

	t.Setenv(EnvVar, "development")
	assert.False(t, IsProduction())
}
