// Package alog provides the default logging sink for an actor.System,
// backed by go.uber.org/zap. Applications may ignore this package
// entirely and set any type satisfying actor.Logger as Options.Logger.
package alog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger adapts a *zap.SugaredLogger to actor.Logger's small interface.
type Logger struct {
	s *zap.SugaredLogger
}

// NewZap builds a development-friendly console logger at the given
// level ("debug", "info", "warn", "error"). An unrecognised level falls
// back to "info", the default log level.
func NewZap(level string) *Logger {
	lvl := zapcore.InfoLevel
	_ = lvl.UnmarshalText([]byte(level))

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "" // the kernel loop logs are high frequency; keep lines short

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	return &Logger{s: l.Sugar()}
}

// Discard returns a Logger that drops everything, useful in tests that
// want real zap call shapes without console noise.
func Discard() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

func (l *Logger) Println(msg string) { l.s.Info(msg) }

func (l *Logger) Debugw(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l *Logger) Infow(msg string, kv ...interface{})  { l.s.Infow(msg, kv...) }
func (l *Logger) Warnw(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
func (l *Logger) Errorw(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
