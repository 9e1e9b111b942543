package utils

import (
	"log"
	"os"
	"sync"

	"calmwave/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Global logger instance
var (
	Logger     *zap.Logger
	loggerOnce sync.Once
)

// InitializeLogger sets up the logging configuration. When LOG_FILE is set, JSON records are also
// written to a rotating file.
func InitializeLogger() {
	var cfg zap.Config
	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	level := zap.NewAtomicLevelAt(zap.DebugLevel)
	if config.IsProduction() {
		level.SetLevel(zap.InfoLevel)
	}
	if parsed, err := zapcore.ParseLevel(config.AppConfig.LogLevel); err == nil {
		level.SetLevel(parsed)
	}
	cfg.Level = level

	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if path := config.AppConfig.LogFile; path != "" {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   path,
				MaxSize:    100, // MB
				MaxBackups: 30,
				MaxAge:     90, // days
			}),
			level,
		)
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	Logger = logger
	zap.ReplaceGlobals(logger)
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	loggerOnce.Do(func() {
		if Logger == nil {
			InitializeLogger()
		}
	})
	return Logger
}

// UseLogger installs l as the global logger. Tests pass zap.NewNop().
func UseLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	Logger = l
	zap.ReplaceGlobals(l)
}

// Sync flushes buffered log entries on shutdown.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
	_ = os.Stdout.Sync()
}
