package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
	envTest  = "test"
)

type Logger struct {
	*slog.Logger
}

func New(env string) *Logger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *Logger {
	var handler slog.Handler

	switch env {
	case envLocal:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	case envDev:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	case envProd:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case envTest:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelError})
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{Logger: slog.New(handler)}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// StdLogger adapts the logger for libraries that want a *log.Logger.
func (l *Logger) StdLogger(level slog.Level) *log.Logger {
	return slog.NewLogLogger(l.Handler(), level)
}
