package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"mem0mcp/internal/config"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zerolog logger from the resolved log configuration. Console
// output goes to stderr; when a log file is configured it is rotated with
// lumberjack and receives JSON regardless of the console format.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return zerolog.Logger{}, err
	}

	writers := []io.Writer{consoleWriter(cfg.LogFormat)}

	if cfg.LogFile != "" {
		writers = append(writers, fileWriter(cfg))
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)

	return logger, nil
}

func consoleWriter(format string) io.Writer {
	if strings.ToLower(format) == "json" {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{Out: os.Stderr}
}

func fileWriter(cfg config.LogConfig) io.Writer {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		// Fall back to console-only logging; the caller still gets a logger.
		return io.Discard
	}
	return &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxLogSizeMB,
		MaxBackups: cfg.MaxLogBackups,
		LocalTime:  true,
	}
}
