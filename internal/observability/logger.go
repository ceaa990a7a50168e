package observability

import (
	"context"
	"io"
	"log/slog"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// NewLoggerTo builds a text logger writing to w at the level the shared
// service logger would use for level. Interactive binaries use it to keep
// logs off stdout.
func NewLoggerTo(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: sharedLevel(level)}))
}

// sharedLevel reports the lowest level sharedobs.NewLogger enables for level.
func sharedLevel(level string) slog.Level {
	shared := sharedobs.NewLogger(level, "text")
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if shared.Enabled(context.Background(), l) {
			return l
		}
	}
	return slog.LevelError
}
