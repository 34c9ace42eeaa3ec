package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
)

// Setup configures the global slog logger.
//
// Console logs go to stderr so that decode/print output on stdout stays
// clean enough to pipe. If logDir is non-empty, logs are additionally
// written as JSON to a timestamped file in that directory.
func Setup(levelStr, logDir string) error {
	level := parseLevel(levelStr)

	handlers := []slog.Handler{
		tint.NewHandler(os.Stderr, &tint.Options{Level: level}),
	}

	if logDir != "" {
		w, path, err := openLogFile(os.ExpandEnv(logDir))
		if err != nil {
			return err
		}
		handlers = append(handlers, slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
		fmt.Fprintf(os.Stderr, "Logging to file: %s\n", path)
	}

	if len(handlers) == 1 {
		slog.SetDefault(slog.New(handlers[0]))
	} else {
		slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
	}

	return nil
}

// openLogFile creates dir if needed and opens a timestamped log file in it.
func openLogFile(dir string) (io.Writer, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create log output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("pngme_%s.log", time.Now().Format("20060102_150405")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create log file: %w", err)
	}

	return f, path, nil
}

// parseLevel converts a string log level to slog.Level, defaulting to info.
func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
