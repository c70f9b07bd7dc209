package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type Config struct {
	NetworkName string
	ImageName   string
	Database    string
	Username    string
	Password    string
	Logger      Logger
}

func buildConfig(opts ...Option) *Config {
	cfg := &Config{
		ImageName: "postgres:17.0-alpine3.20",
		Database:  "components",
		Username:  "tracker",
		Password:  "tracker",
		Logger:    &logger.NoopLogger{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}
