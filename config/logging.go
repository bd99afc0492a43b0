package config

import (
	"go.uber.org/zap"
)

// setLogger builds the zap logger for the given environment. Production gets
// the JSON production config, everything else gets the development console
// encoder with debug enabled.
func setLogger(environment string) (*zap.Logger, error) {
	switch environment {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return cfg.Build()
	}
}
