// Package logger is the structured console logger of the command line
// tools. The server itself logs through log/slog.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	Sync() error
}

func NewDefaultLogger() Logger {
	return NewLogger("info")
}

// NewLogger builds a JSON logger at the given level. Unknown levels fall
// back to info.
func NewLogger(level string) Logger {
	atomic := zap.NewAtomicLevel()
	if err := atomic.UnmarshalText([]byte(level)); err != nil {
		atomic.SetLevel(zapcore.InfoLevel)
	}

	config := zap.NewProductionConfig()
	config.Level = atomic
	config.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

var (
	once          sync.Once
	defaultLogger Logger
)

func getDefaultLogger() Logger {
	once.Do(func() {
		if defaultLogger == nil {
			defaultLogger = NewDefaultLogger()
		}
	})
	return defaultLogger
}

// SetDefault replaces the package level logger. It must be called before
// the first log line to take effect.
func SetDefault(l Logger) {
	once.Do(func() {
		defaultLogger = l
	})
}

func Sync() {
	_ = getDefaultLogger().Sync()
}

func Debug(msg string, keysAndValues ...any) {
	getDefaultLogger().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	getDefaultLogger().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	getDefaultLogger().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	getDefaultLogger().Errorw(msg, keysAndValues...)
}
