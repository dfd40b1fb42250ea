// Package logger provides the logging interface used across gpt-chat-go and a
// zap-backed implementation that writes to stderr.
package logger

import (
	"io"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used by the library.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type zapLogger struct {
	z *zap.Logger
}

// NewZapLogger builds a console logger writing to w. Debug entries are only
// emitted when debug is set.
func NewZapLogger(w io.Writer, debug bool) Logger {
	return zapLogger{z: newZap(w, debug)}
}

func newZap(w io.Writer, debug bool) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

func (l zapLogger) fields(obj any) []zap.Field {
	if obj == nil {
		return nil
	}
	if m, ok := obj.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]zap.Field, 0, len(m))
		for _, k := range keys {
			out = append(out, zap.Any(k, m[k]))
		}
		return out
	}
	return []zap.Field{zap.Any("obj", obj)}
}

func (l zapLogger) Info(msg string, obj any)  { l.z.Info(msg, l.fields(obj)...) }
func (l zapLogger) Warn(msg string, obj any)  { l.z.Warn(msg, l.fields(obj)...) }
func (l zapLogger) Debug(msg string, obj any) { l.z.Debug(msg, l.fields(obj)...) }
func (l zapLogger) Error(msg string, obj any) { l.z.Error(msg, l.fields(obj)...) }

// Sync flushes buffered entries if the logger is zap-backed.
func Sync(logger Logger) {
	if zl, ok := logger.(zapLogger); ok {
		_ = zl.z.Sync()
	}
}

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}
