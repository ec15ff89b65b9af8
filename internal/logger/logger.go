// Package logger builds the process-wide zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing human-readable output to stderr. Set
// REVISA_LOG_JSON=1 for JSON output and REVISA_DEBUG=1 for debug level.
func New() *zap.Logger {
	level := zapcore.InfoLevel
	if os.Getenv("REVISA_DEBUG") == "1" {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if os.Getenv("REVISA_LOG_JSON") == "1" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

// Nop returns a no-op logger for tests and optional call sites.
func Nop() *zap.Logger {
	return zap.NewNop()
}
