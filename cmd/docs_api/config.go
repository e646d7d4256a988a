package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/docsearch/internal/engine/factory"
	"github.com/DjordjeVuckovic/docsearch/internal/server"
	"github.com/DjordjeVuckovic/docsearch/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type DocsAPIConfig struct {
	Server       *server.Config
	EngineConfig factory.EngineConfig
}

func (as *AppConfig) Load() (*DocsAPIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/docs_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	serverCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server configuration from environment", "error", err)
		return nil, err
	}

	engineCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load engine configuration from environment", "error", err)
		return nil, err
	}

	return &DocsAPIConfig{
		Server:       serverCfg,
		EngineConfig: *engineCfg,
	}, nil
}
