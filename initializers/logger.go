package initializers

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger installs a JSON slog logger as the default. When LOG_FILE is set
// records also go to a rotated file.
func InitLogger(cfg Config) *slog.Logger {
	logger := newLogger(cfg, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

func newLogger(cfg Config, stdout io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	output := stdout
	var fileErr error
	if cfg.LogFile != "" {
		if fileErr = os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); fileErr == nil {
			output = io.MultiWriter(stdout, &lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    100,
				MaxBackups: 10,
				MaxAge:     30,
				Compress:   true,
			})
		}
	}

	logger := slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))
	if fileErr != nil {
		logger.Warn("Log file unavailable, logging to stdout only", "path", cfg.LogFile, "error", fileErr)
	}
	return logger
}
