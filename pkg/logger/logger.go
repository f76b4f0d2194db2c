package logger

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level         string
	Path          string
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int
	Compress      bool
	DisableStderr bool
}

// New builds a JSON logger writing to stderr and, when Path is set, to a rolling file.
func New(opts Options) (*zap.Logger, error) {
	level := parseLevel(opts.Level)
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = timeEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	var cores []zapcore.Core
	if !opts.DisableStderr {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(os.Stderr), level))
	}
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    nz(opts.MaxSizeMB, 50), // megabytes
			MaxBackups: nz(opts.MaxBackups, 7),
			MaxAge:     nz(opts.MaxAgeDays, 14), // days
			Compress:   opts.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(lj), level))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	zapOpts := []zap.Option{zap.AddCaller()}
	if opts.Level == "debug" {
		zapOpts = append(zapOpts, zap.Development())
	}
	return zap.New(zapcore.NewTee(cores...), zapOpts...), nil
}

type ctxKey struct{}

func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request-scoped logger, or fallback when none is attached.
func FromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}

// OrNop guards constructors against nil loggers.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func nz(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
