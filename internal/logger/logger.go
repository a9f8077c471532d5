package logger

import (
	"go.uber.org/zap"

	"github.com/mind-engage/reasoned/internal/config"
)

func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Mode == config.ModeOnline {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
