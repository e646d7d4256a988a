package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/docsearch/internal/engine/factory"
	"github.com/DjordjeVuckovic/docsearch/internal/ingest"
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

type WorkerConfig struct {
	EngineConfig factory.EngineConfig
	Kafka        ingest.Config

	// MetricsAddr enables a /metrics listener when set, e.g. ":9091"
	MetricsAddr string
}

func (as *AppConfig) Load() (*WorkerConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/docs_worker/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	engineCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load engine configuration from environment", "error", err)
		return nil, err
	}

	kafkaCfg, err := ingest.LoadEnv()
	if err != nil {
		slog.Error("Failed to load kafka configuration from environment", "error", err)
		return nil, err
	}

	return &WorkerConfig{
		EngineConfig: *engineCfg,
		Kafka:        *kafkaCfg,
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
	}, nil
}
