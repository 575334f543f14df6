package writer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lamim/prdforge/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// multiHandler wraps multiple handlers to write to multiple destinations
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// LogPath returns the log file location for a logging config
func LogPath(cfg config.LoggingConfig, outputDir string) string {
	if cfg.File != "" {
		return cfg.File
	}
	return filepath.Join(outputDir, "prdforge.log")
}

// SetupLogger creates a logger that writes text to console and JSON to a rotating log file.
// The returned closer releases the file.
func SetupLogger(cfg config.LoggingConfig, outputDir string, level slog.Level, console io.Writer) (*slog.Logger, io.Closer, error) {
	path := LogPath(cfg, outputDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays, // days
		Compress:   cfg.Compress,
	}

	textHandler := slog.NewTextHandler(console, &slog.HandlerOptions{
		Level: level,
	})

	// The file keeps debug detail regardless of the console level
	jsonHandler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: min(level, slog.LevelDebug),
	})

	logger := slog.New(&multiHandler{
		handlers: []slog.Handler{textHandler, jsonHandler},
	})

	return logger, logFile, nil
}
