package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// The terminal belongs to the UI, so log lines go to a rotated file.
// Warn is used for failed requests; they are diagnostics, never fatal.
func newLogger(config *Config) (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})

	if config.LogFile == "" {
		logger.SetOutput(io.Discard)
		return logger, nil
	}
	logger.SetOutput(&lumberjack.Logger{
		Filename:   config.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	})
	return logger, nil
}
