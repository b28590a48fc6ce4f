package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/quizforge-backend/internal/config"
)

// redactedKeys are attribute keys whose values never reach the log output.
// The database DSN carries the password and tokens grant API access.
var redactedKeys = map[string]struct{}{
	"dsn":           {},
	"password":      {},
	"token":         {},
	"authorization": {},
	"jwt_secret":    {},
}

// NewLogger builds the process logger on os.Stderr and installs it as the
// slog default. Both binaries tag every line with app and version.
//
// Format "json" is meant for production, "text" adds source locations for
// local runs. Level is debug, info, warn or error; anything else means info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   strings.EqualFold(cfg.Format, "text"),
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("app", "quizforge"),
		slog.String("version", Version),
	)
}

func redact(groups []string, a slog.Attr) slog.Attr {
	if _, ok := redactedKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
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
