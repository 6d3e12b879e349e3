package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace sits below slog.LevelDebug for step-internal chatter.
const LevelTrace = slog.Level(-8)

// MaxSeparatorLength bounds the rendered separator; longer ones keep their tail.
const MaxSeparatorLength = 30

const sepKey = "sep"

// Logger is a slog.Logger bound to one separator.
type Logger struct {
	base *slog.Logger
	sep  string
}

// New creates a Logger writing text records at or above level to w.
func New(w io.Writer, level slog.Level, root string) *Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	}
	return &Logger{
		base: slog.New(slog.NewTextHandler(w, opts)),
		sep:  root,
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, slog.LevelError+1, "")
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= LevelTrace {
		return slog.String(slog.LevelKey, "TRACE")
	}
	return a
}

// ParseLevel maps a config string to a slog level. Unknown values fall back
// to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Sub returns a logger whose separator is this one's plus "." plus name.
func (l *Logger) Sub(name string) *Logger {
	sep := name
	if l.sep != "" {
		sep = l.sep + "." + name
	}
	return &Logger{base: l.base, sep: sep}
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{base: l.base.With(args...), sep: l.sep}
}

// Separator returns the rendered separator of this logger.
func (l *Logger) Separator() string {
	return clampSeparator(l.sep)
}

func (l *Logger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	ctx := context.Background()
	if !l.base.Enabled(ctx, level) {
		return
	}
	attrs := make([]any, 0, len(args)+2)
	attrs = append(attrs, sepKey, l.Separator())
	attrs = append(attrs, args...)
	l.base.Log(ctx, level, msg, attrs...)
}

func clampSeparator(sep string) string {
	if len(sep) <= MaxSeparatorLength {
		return sep
	}
	return sep[len(sep)-MaxSeparatorLength:]
}
