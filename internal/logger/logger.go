package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sleuth-io/razordiag/internal/cache"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
	level         = new(slog.LevelVar)
)

// Get returns the global logger instance, initializing it once
func Get() *slog.Logger {
	once.Do(func() {
		defaultLogger = initLogger()
	})
	return defaultLogger
}

// initLogger creates the global logger that writes to razordiag.log in the cache directory.
// Uses lumberjack for rotation. If the cache directory cannot be resolved, returns a
// logger that discards all output.
func initLogger() *slog.Logger {
	logPath, err := cache.GetLogPath()
	if err != nil {
		return Discard()
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    1, // megabytes
		MaxBackups: 0,
		MaxAge:     0,
		Compress:   false,
	}

	level.Set(ParseLevel(os.Getenv("RAZORDIAG_LOG_LEVEL")))
	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}

// SetLevel changes the level of the global logger, e.g. after the config file is read
func SetLevel(name string) {
	level.Set(ParseLevel(name))
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog level. Unknown or empty names mean debug.
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
