package pathcore

import "log/slog"

// slogAdapter lets a *slog.Logger satisfy Logger without making slog part
// of every call site's import list.
type slogAdapter struct{ l *slog.Logger }

func (a slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }

// NewSlogLogger wraps l (or slog.Default() if l is nil) as a Logger.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogAdapter{l: l}
}

func loggerOrDefault(l Logger) Logger {
	if l == nil {
		return NewSlogLogger(nil)
	}
	return l
}
