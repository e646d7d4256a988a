// Package main Docsearch API
// @title Docsearch API
// @version 1.0
// @description Full-text search over a document index with page based navigation
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/DjordjeVuckovic/docsearch/docs"
	"github.com/DjordjeVuckovic/docsearch/internal/documents"
	"github.com/DjordjeVuckovic/docsearch/internal/engine/factory"
	"github.com/DjordjeVuckovic/docsearch/internal/metrics"
	"github.com/DjordjeVuckovic/docsearch/internal/router"
	"github.com/DjordjeVuckovic/docsearch/internal/server"
	"github.com/labstack/echo/v4"
)

const startupTimeout = 30 * time.Second

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.Server.LogLevel)

	collector := metrics.New()

	bootCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	engineInstance, err := factory.NewEngine(bootCtx, cfg.EngineConfig)
	cancel()
	if err != nil {
		slog.Error("Failed to create search engine", "engine", cfg.EngineConfig.Type, "error", err)
		os.Exit(1)
	}
	defer engineInstance.Close()

	s := server.New(cfg.Server, engineInstance.Health).
		SetupMiddlewares().
		SetupMetrics("/metrics", collector).
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Docsearch API is running")
	})

	svc := documents.NewService(collector.Instrument(engineInstance.Engine), cfg.EngineConfig.IndexName)
	router.NewDocumentRouter(s.Echo, svc, cfg.Server.PublicBaseURL).Bind()

	slog.Info("Serving index", "engine", cfg.EngineConfig.Type, "index", cfg.EngineConfig.IndexName)

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		engineInstance.Close()
		os.Exit(1)
	}
}
