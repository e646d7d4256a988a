package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DjordjeVuckovic/docsearch/internal/documents"
	"github.com/DjordjeVuckovic/docsearch/internal/engine/factory"
	"github.com/DjordjeVuckovic/docsearch/internal/ingest"
	"github.com/DjordjeVuckovic/docsearch/internal/metrics"
	"github.com/labstack/echo/v4"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load worker configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineInstance, err := factory.NewEngine(ctx, cfg.EngineConfig)
	if err != nil {
		slog.Error("Failed to create search engine", "engine", cfg.EngineConfig.Type, "error", err)
		os.Exit(1)
	}
	defer engineInstance.Close()

	collector := metrics.New()
	svc := documents.NewService(collector.Instrument(engineInstance.Engine), cfg.EngineConfig.IndexName)

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, collector)
	}

	consumer := ingest.NewConsumer(
		ingest.NewKafkaReader(cfg.Kafka),
		ingest.NewHandler(svc, collector.ObserveUpstream),
	)

	slog.Info("Starting document worker",
		"brokers", cfg.Kafka.Brokers,
		"topic", cfg.Kafka.Topic,
		"group", cfg.Kafka.GroupID,
		"index", cfg.EngineConfig.IndexName)

	if err := consumer.Run(ctx); err != nil {
		slog.Error("Worker stopped with error", "error", err)
		engineInstance.Close()
		os.Exit(1)
	}
	slog.Info("Worker stopped")
}

func serveMetrics(ctx context.Context, addr string, collector *metrics.Collector) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/metrics", echo.WrapHandler(collector.Handler()))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Serving worker metrics", "addr", addr)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server failed", "error", err)
	}
}
