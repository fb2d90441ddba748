// Package logging builds the structured logger shared by the HTTP host and the
// Lambda entry point.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sebasr/hello-function/internal/config"
)

// New creates a logrus logger writing to stdout. The config is expected to be
// validated; an unknown level falls back to info.
func New(cfg config.LoggingConfig) *logrus.Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(cfg config.LoggingConfig, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
