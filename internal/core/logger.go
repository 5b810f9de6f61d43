// AngelaMos | 2026
// logger.go

package core

import (
	"io"
	"log/slog"

	"github.com/rgrams-coder/aicmmlr/internal/config"
)

// NewLogger honours log.level (debug, info, warn, error) and log.format
// (json or text). Unknown levels log at info.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
