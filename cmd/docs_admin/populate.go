package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/docsearch/internal/documents"
	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/engine/factory"
	"github.com/DjordjeVuckovic/docsearch/internal/reader"
	"github.com/DjordjeVuckovic/docsearch/internal/schema"
	"github.com/spf13/cobra"
)

const defaultBatchSize = 500

var (
	datasetPath string
	batchSize   int
	createIndex bool
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Push every document of a .json, .ndjson or .csv dataset and refresh the index",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if datasetPath == "" {
			return fmt.Errorf("--file is required")
		}
		if batchSize <= 0 {
			batchSize = defaultBatchSize
		}

		f, err := os.Open(datasetPath)
		if err != nil {
			return fmt.Errorf("failed to open dataset: %w", err)
		}
		defer f.Close()

		r, err := reader.ForFile(datasetPath, f)
		if err != nil {
			return err
		}
		docs, err := r.Read()
		if err != nil {
			return fmt.Errorf("failed to read dataset: %w", err)
		}

		inst, index, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer inst.Close()

		if createIndex {
			if err := factory.EnsureIndex(ctx, inst.Engine, index, schema.Default()); err != nil {
				return err
			}
		}

		start := time.Now()
		svc := documents.NewService(inst.Engine, index)
		for i, batch := range batches(docs, batchSize) {
			if err := svc.PushAll(ctx, batch); err != nil {
				return fmt.Errorf("batch %d: %w", i+1, err)
			}
			slog.Info("Batch pushed", "batch", i+1, "size", len(batch))
		}

		slog.Info("Index populated", "index", index, "documents", len(docs), "duration", time.Since(start))
		return nil
	},
}

func batches(docs []domain.Document, size int) [][]domain.Document {
	var out [][]domain.Document
	for start := 0; start < len(docs); start += size {
		end := min(start+size, len(docs))
		out = append(out, docs[start:end])
	}
	return out
}

func init() {
	populateCmd.Flags().StringVarP(&datasetPath, "file", "f", "", "dataset file (.json, .ndjson, .jsonl or .csv)")
	populateCmd.Flags().IntVar(&batchSize, "batch-size", defaultBatchSize, "documents per bulk request")
	populateCmd.Flags().BoolVar(&createIndex, "create-index", false, "create the index with the default layout when it is missing")
}
