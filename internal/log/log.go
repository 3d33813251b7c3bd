// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger
var baseLogger *zap.Logger

// Init initializes the package-level logger
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	baseLogger = zapLogger
	log = zapLogger.Sugar()
	return nil
}

// GetZapLogger returns the base zap logger
func GetZapLogger() *zap.Logger {
	if baseLogger == nil {
		// Fallback logger if not initialized
		baseLogger, _ = zap.NewProduction(zap.AddCallerSkip(1))
		log = baseLogger.Sugar()
	}
	return baseLogger
}

// GetSugaredLogger returns the sugared logger instance. Callers outside this
// package get a logger without the helper caller skip.
func GetSugaredLogger() *zap.SugaredLogger {
	return GetZapLogger().WithOptions(zap.AddCallerSkip(-1)).Sugar()
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		log.Sync()
	}
}

func logger() *zap.SugaredLogger {
	if log == nil {
		GetZapLogger()
	}
	return log
}

// Package-level convenience functions
func Debugw(msg string, keysAndValues ...interface{}) {
	logger().Debugw(msg, keysAndValues...)
}

func Info(args ...interface{}) {
	logger().Info(args...)
}

func Infof(template string, args ...interface{}) {
	logger().Infof(template, args...)
}

func Errorf(template string, args ...interface{}) {
	logger().Errorf(template, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	logger().Errorw(msg, keysAndValues...)
}
