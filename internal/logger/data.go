package logger

import (
	"sync"

	"go.uber.org/zap"
)

// Logger provides component-scoped leveled logging on top of zap.
// The zero value is usable and writes every level to stderr.
type Logger struct {
	MinLevel LogLevel
	mu       sync.Mutex
	base     *zap.Logger
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)
