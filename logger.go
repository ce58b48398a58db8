package layer2d

import (
	"log/slog"

	"github.com/gogpu/layer2d/internal/logx"
)

// SetLogger configures the logger for layer2d and all its sub-packages.
// By default, layer2d produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by layer2d:
//   - [slog.LevelDebug]: buffer growth, stored frames, glyph uploads
//   - [slog.LevelInfo]: sprite sheets and fonts loaded
//   - [slog.LevelWarn]: glyph cache cleared because the texture filled up
//
// Example:
//
//	layer2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logx.Set(l)
}

// Logger returns the current logger used by layer2d.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logx.Logger()
}
