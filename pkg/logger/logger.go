package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wbsplanner/pkg/trace"
)

var Log *zap.Logger = zap.NewNop()

// Options selects the zap preset. File, when set, replaces stderr output,
// which keeps interactive client screens clean.
type Options struct {
	Development bool
	File        string
	Level       string
}

// NewLogger builds the process logger and stores it in Log.
func NewLogger(opts Options) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	if opts.Level != "" {
		if lvl, err := zapcore.ParseLevel(opts.Level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}
	if opts.File != "" {
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	}
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	Log = l
	return l
}

// WithTrace 从 context 中提取 trace_id 并添加到 logger
func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if traceID := trace.FromContext(ctx); traceID != "" {
		return logger.With(zap.String("trace_id", traceID))
	}
	return logger
}
