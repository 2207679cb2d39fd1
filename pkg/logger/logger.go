package logger

import (
	"os"
	"strings"

	"ai-tutoring-system/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// AppLogger implements the domain.Logger interface on top of zap
type AppLogger struct {
	logger *zap.SugaredLogger
}

// NewLogger creates a console logger. When filePath is set, JSON lines are
// also written to a rotated file.
func NewLogger(levelStr string, filePath string) *AppLogger {
	level := parseLogLevel(levelStr)

	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	consoleConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleConfig),
			zapcore.Lock(os.Stdout),
			level,
		),
	}

	if filePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    10, // Megabytes
			MaxBackups: 5,
			MaxAge:     30, // Days
			Compress:   true,
		}

		fileConfig := zap.NewProductionEncoderConfig()
		fileConfig.TimeKey = "timestamp"
		fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		fileConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileConfig),
			zapcore.AddSync(rotator),
			level,
		))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))

	return &AppLogger{logger: l.Sugar()}
}

// NewNop returns a logger that discards everything.
func NewNop() domain.Logger {
	return &AppLogger{logger: zap.NewNop().Sugar()}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.logger.Infow(msg, fields...)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	allFields := append([]interface{}{"error", err}, fields...)
	l.logger.Errorw(msg, allFields...)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.logger.Debugw(msg, fields...)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.logger.Warnw(msg, fields...)
}

// Sync flushes buffered log entries.
func (l *AppLogger) Sync() error {
	return l.logger.Sync()
}

// parseLogLevel converts string log level to a zap level
func parseLogLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
