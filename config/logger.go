package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// SetupLogger installs the process-wide slog logger and returns it.
func SetupLogger(c LogConfig) *slog.Logger {
	return setupLogger(os.Stdout, c)
}

func setupLogger(w io.Writer, c LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(c.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var h slog.Handler
	if strings.EqualFold(c.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(h)
	slog.SetDefault(l)
	return l
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
