package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/docsearch/internal/engine/factory"
	"github.com/DjordjeVuckovic/docsearch/pkg/config/env"
	"github.com/spf13/cobra"
)

var indexName string

var rootCmd = &cobra.Command{
	Use:          "docs_admin",
	Short:        "Manage the document search index",
	SilenceUsage: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&indexName, "index", "", "index name (defaults to INDEX_NAME / ES_INDEX_NAME)")

	rootCmd.AddCommand(createIndexCmd)
	rootCmd.AddCommand(deleteIndexCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(populateCmd)
}

// openEngine loads the engine configuration and connects to the configured engine
func openEngine(ctx context.Context) (*factory.Instance, string, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/docs_admin/.env"); err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	cfg, err := factory.LoadEnv()
	if err != nil {
		return nil, "", fmt.Errorf("engine config: %w", err)
	}

	inst, err := factory.NewEngine(ctx, *cfg)
	if err != nil {
		return nil, "", err
	}

	index := cfg.IndexName
	if indexName != "" {
		index = indexName
	}
	return inst, index, nil
}
