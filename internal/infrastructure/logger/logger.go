package logger

import (
	"go.uber.org/zap"

	"github.com/prateleira/backend/config"
)

// New builds a zap logger for the given environment: JSON output at info
// level in production, console output otherwise. debug lowers the level to
// debug in either case.
func New(environment string, debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if config.IsProduction(environment) {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return cfg.Build()
}
