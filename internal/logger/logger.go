// Package logger configures the application's structured zap logger.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a zap.Logger so callers can re-initialize it with a
// configured level after startup.
type Logger struct {
	// Log is the underlying zap logger.
	Log *zap.Logger
}

// New returns a Logger backed by a no-op zap logger. Call Init to
// replace it with a configured one.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds the production logger at the given level, writing JSON
// to stdout and to a rotated log file. Level is one of "Debug",
// "Info", "Warn", "Error" (case-insensitive via zap's parser).
func (l *Logger) Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	consoleCore := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), lvl)
	fileCore := zapcore.NewCore(encoder, zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath(),
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}), lvl)

	l.Log = zap.New(
		zapcore.NewTee(consoleCore, fileCore),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	return nil
}

// logPath resolves the log file location, preferring LOG_PATH from the
// environment.
func logPath() string {
	if p := os.Getenv("LOG_PATH"); p != "" {
		return p
	}
	if err := os.MkdirAll("logs", 0o755); err == nil {
		return "logs/echoplay.log"
	}
	return "echoplay.log"
}
