package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerConfig defines the configuration for the logger.
type LoggerConfig struct {
	Level      logrus.Level // Minimum level written
	Format     string       // "text" or "json"
	FilePath   string       // Optional log file, rotated by size
	MaxSize    int          // Maximum size in megabytes before log rotation
	MaxBackups int          // Maximum number of old log files to retain
	MaxAge     int          // Maximum number of days to retain old log files
	Compress   bool         // Whether to compress rotated log files
	Output     io.Writer    // Console writer, os.Stderr when nil
}

// LevelFromVerbosity maps the number of -v flags to a log level.
func LevelFromVerbosity(verbose int) logrus.Level {
	switch {
	case verbose >= 2:
		return logrus.DebugLevel
	case verbose == 1:
		return logrus.InfoLevel
	default:
		return logrus.WarnLevel
	}
}

// NewLogger returns a new logrus.Logger configured according to the provided LoggerConfig.
// Console output always goes to Output; when FilePath is set entries are
// also appended to a rotated file.
func NewLogger(config LoggerConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetLevel(config.Level)

	switch strings.ToLower(config.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
			},
		})
	default:
		return nil, fmt.Errorf("unknown log format: %s", config.Format)
	}

	console := config.Output
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{console}

	if config.FilePath != "" {
		dir := filepath.Dir(config.FilePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}

		writers = append(writers, &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}

	if len(writers) > 1 {
		logger.SetOutput(io.MultiWriter(writers...))
	} else {
		logger.SetOutput(writers[0])
	}

	return logger, nil
}

// WithFile returns a logger entry with the specified file context.
func WithFile(logger logrus.FieldLogger, filePath string) *logrus.Entry {
	return logger.WithField("file", filePath)
}

// WithOperation returns a logger entry with the specified operation context.
func WithOperation(logger logrus.FieldLogger, operation string) *logrus.Entry {
	return logger.WithField("operation", operation)
}
