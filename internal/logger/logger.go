package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logLevelNames = map[LogLevel]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// New builds a console logger writing to stderr.
func New(level LogLevel) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel,
	)
	return &Logger{MinLevel: level, base: zap.New(core)}
}

// NewWithZap wraps an existing zap logger, e.g. an observer core in tests.
func NewWithZap(z *zap.Logger, level LogLevel) *Logger {
	return &Logger{MinLevel: level, base: z}
}

// ParseLevel maps debug/info/warn/error to a LogLevel, defaulting to Info.
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l LogLevel) String() string {
	return logLevelNames[l]
}

// SetLogLevel sets the minimum log level
func (l *Logger) SetLogLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.MinLevel = level
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.base == nil {
		return nil
	}
	return l.base.Sync()
}

func (l *Logger) backend() *zap.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.base == nil {
		l.base = New(l.MinLevel).base
	}
	return l.base
}

func (l *Logger) log(level LogLevel, component, message string, args ...interface{}) {
	l.mu.Lock()
	minLevel := l.MinLevel
	l.mu.Unlock()
	if level < minLevel {
		return
	}

	formattedMsg := fmt.Sprintf(message, args...)
	z := l.backend()
	if component != "" {
		z = z.With(zap.String("component", component))
	}

	switch level {
	case LevelDebug:
		z.Debug(formattedMsg)
	case LevelInfo:
		z.Info(formattedMsg)
	case LevelWarn:
		z.Warn(formattedMsg)
	default:
		z.Error(formattedMsg)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(component, message string, args ...interface{}) {
	l.log(LevelDebug, component, message, args...)
}

// Info logs an info message
func (l *Logger) Info(component, message string, args ...interface{}) {
	l.log(LevelInfo, component, message, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(component, message string, args ...interface{}) {
	l.log(LevelWarn, component, message, args...)
}

// Error logs an error message
func (l *Logger) Error(component, message string, args ...interface{}) {
	l.log(LevelError, component, message, args...)
}

// Fatal logs an error message and exits
func (l *Logger) Fatal(component, message string, args ...interface{}) {
	l.log(LevelError, component, message, args...)
	_ = l.Sync()
	os.Exit(1)
}
