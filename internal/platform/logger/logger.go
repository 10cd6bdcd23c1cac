package logger

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// New returns the process logger. Production gets machine-readable JSON;
// everything else gets a tinted console at debug level, which is also where
// audit entries are echoed during development.
func New(production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelDebug,
	}))
}
