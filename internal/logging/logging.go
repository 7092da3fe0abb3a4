package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

// Level picks the configured level, falling back to debug in development
// mode and info otherwise.
func Level(c *config.Config) (logrus.Level, error) {
	if c.Log.Level != "" {
		return logrus.ParseLevel(c.Log.Level)
	}
	if c.Development() {
		return logrus.DebugLevel, nil
	}
	return logrus.InfoLevel, nil
}

// Setup configures every given logger the same way. When a log file is
// configured each logger also writes to it through a rotating hook.
func Setup(c *config.Config, loggers ...*logrus.Logger) error {
	level, err := Level(c)
	if err != nil {
		return fmt.Errorf("unable to parse log level: %w", err)
	}

	var hook logrus.Hook
	if c.Log.File != "" {
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   c.Log.File,
			MaxSize:    c.Log.MaxSizeMB,
			MaxBackups: c.Log.MaxBackups,
			MaxAge:     c.Log.MaxAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to create log file hook: %w", err)
		}
	}

	for _, log := range loggers {
		log.SetLevel(level)
		log.SetFormatter(&logrus.TextFormatter{
			ForceColors:   c.Development(),
			FullTimestamp: true,
		})
		if hook != nil {
			log.AddHook(hook)
		}
	}
	return nil
}
