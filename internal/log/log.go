// Package log provides the process-wide zap logger.
package log

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.SugaredLogger]

func init() {
	zl, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		zl = zap.NewNop()
	}
	logger.Store(zl.Sugar())
}

// Init builds a console logger writing to stderr; debug lowers the level
// and adds caller information.
func Init(debug bool) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}
	logger.Store(zl.Sugar())
	return nil
}

// Set replaces the logger, e.g. with zaptest or zap.NewNop in tests.
func Set(l *zap.Logger) {
	logger.Store(l.WithOptions(zap.AddCallerSkip(1)).Sugar())
}

func get() *zap.SugaredLogger { return logger.Load() }

func Sync() {
	_ = get().Sync()
}

func Debugw(msg string, keysAndValues ...interface{}) {
	get().Debugw(msg, keysAndValues...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	get().Infow(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	get().Warnw(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	get().Errorw(msg, keysAndValues...)
}

func Infof(template string, args ...interface{}) {
	get().Infof(template, args...)
}
