// Package logging wraps a single process-wide charmbracelet/log logger,
// grounded on common/log/log.go.
package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"mahjong/internal/config"
)

var logger *log.Logger

// Init sets up the package logger with appName as its prefix and the level
// configured under config.Conf.Log.Level.
func Init(appName string) {
	logger = log.New(os.Stderr)
	logger.SetPrefix(appName)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)

	level := log.InfoLevel
	if config.Conf != nil {
		switch config.Conf.Log.Level {
		case "debug":
			level = log.DebugLevel
		case "warn":
			level = log.WarnLevel
		case "error":
			level = log.ErrorLevel
		}
	}
	logger.SetLevel(level)
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatal(format)
	} else {
		logger.Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Info(format)
	} else {
		logger.Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warn(format)
	} else {
		logger.Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Error(format)
	} else {
		logger.Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debug(format)
	} else {
		logger.Debugf(format, args...)
	}
}
