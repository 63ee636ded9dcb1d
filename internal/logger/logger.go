// Package logger holds the process-wide structured logger.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field names shared by every component so log lines can be filtered
// consistently.
const (
	FieldRunID      = "run_id"
	FieldComponent  = "component"
	FieldEndpoint   = "endpoint"
	FieldSlug       = "slug"
	FieldPath       = "path"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)

// EnvVar selects production behaviour when set to "production" or "prod".
const EnvVar = "MODULAR_ENV"

var (
	// Logger is the global logger. It is a no-op until Initialize runs.
	Logger *zap.SugaredLogger
	// JSONOutput reports whether the active logger emits JSON.
	JSONOutput bool
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// Options control how Initialize builds the logger.
type Options struct {
	JSON    bool
	Verbose bool
}

// Initialize replaces the global logger. Info lines are only emitted
// outside production; --verbose always wins and enables debug output.
func Initialize(opts Options) error {
	level := zap.InfoLevel
	if IsProduction() {
		level = zap.WarnLevel
	}
	if opts.Verbose {
		level = zap.DebugLevel
	}

	var (
		zapLogger *zap.Logger
		err       error
	)
	if opts.JSON {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		zapLogger, err = cfg.Build()
		if err != nil {
			return err
		}
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapLogger = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.AddSync(os.Stderr),
			level,
		))
	}

	JSONOutput = opts.JSON
	Logger = zapLogger.Sugar()
	return nil
}

// IsProduction reports whether MODULAR_ENV names a production deployment.
func IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(os.Getenv(EnvVar)))
	return env == "production" || env == "prod"
}

// Named returns a child logger tagged with the component name.
func Named(component string) *zap.SugaredLogger {
	return Logger.With(FieldComponent, component)
}

// Cleanup flushes buffered entries.
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
