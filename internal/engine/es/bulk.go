package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

// PushBulk indexes docs through the bulk API. Documents carrying a document_id keep it as their id.
func (e *Engine) PushBulk(ctx context.Context, index string, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         index,
		Client:        e.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return apperr.NewUpstream("bulk", apperr.KindUnknown, fmt.Errorf("failed to create bulk indexer: %w", err))
	}

	var successful, failed atomic.Int64

	for _, doc := range docs {
		id, _ := doc.ID()

		body, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", id)
			failed.Add(1)
			continue
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: id,
				Body:       bytes.NewReader(body),
				OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
					successful.Add(1)
				},
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					failed.Add(1)
					if err != nil {
						slog.Error("bulk index error", "error", err, "id", item.DocumentID)
					} else {
						slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
					}
				},
			},
		)
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add document to bulk indexer", "error", err, "id", id)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return upstream("bulk", fmt.Errorf("failed to close bulk indexer: %w", err))
	}

	slog.Info("Bulk indexing completed",
		"successful", successful.Load(),
		"failed", failed.Load(),
		"total", len(docs),
		"index", index)

	if failed.Load() > 0 {
		return apperr.NewUpstream("bulk", apperr.KindUnknown,
			fmt.Errorf("failed to index %d out of %d documents", failed.Load(), len(docs)))
	}

	return nil
}
