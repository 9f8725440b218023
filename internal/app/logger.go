package app

import (
	"github.com/guttosm/bundle-service/config"
	"github.com/guttosm/bundle-service/internal/logger"
)

// InitializeLogger configures the global logger. It runs before anything logs.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
