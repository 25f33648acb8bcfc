// Where: internal/logging/logging.go
// What: logrus setup for the Lambda runtime and the CLI.
// Why: Parse level and format once so every entrypoint logs the same way.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config is the logging configuration.
type Config struct {
	Level  string
	Format string
}

// Default returns the JSON logger used before configuration is available.
func Default(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: true})
	return logger
}

// New builds a logger writing to out.
func New(c Config, out io.Writer) (*logrus.Logger, error) {
	level := strings.TrimSpace(c.Level)
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", c.Level)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)

	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "", "json":
		// CloudWatch already stamps each line.
		logger.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: true})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	default:
		return nil, fmt.Errorf("unsupported log format: %s", c.Format)
	}
	return logger, nil
}
