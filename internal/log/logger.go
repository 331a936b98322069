package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with a component name so each subsystem tags its
// records consistently.
type Logger struct {
	*slog.Logger
	component string
}

// New builds a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler), component: "app"}
}

// Default returns an info-level logger on stderr. CLI output stays on
// stdout; diagnostics go to stderr.
func Default() *Logger {
	return New(os.Stderr, slog.LevelInfo)
}

// WithComponent returns a logger tagged for a specific subsystem.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With(slog.String("component", component)),
		component: component,
	}
}

// With returns a logger with extra attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), component: l.component}
}
