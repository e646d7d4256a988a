package metrics

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/engine"
	"github.com/DjordjeVuckovic/docsearch/internal/schema"
)

// instrumentedEngine records the latency of every call to the wrapped engine
type instrumentedEngine struct {
	next engine.Engine
	c    *Collector
}

// instrumentedBulkEngine keeps engine.BulkPusher visible through the decorator
type instrumentedBulkEngine struct {
	*instrumentedEngine
	bulk engine.BulkPusher
}

// Instrument wraps e so every call is timed. Engines with bulk support keep it.
func (c *Collector) Instrument(e engine.Engine) engine.Engine {
	ie := &instrumentedEngine{next: e, c: c}
	if bulk, ok := e.(engine.BulkPusher); ok {
		return &instrumentedBulkEngine{instrumentedEngine: ie, bulk: bulk}
	}
	return ie
}

func (i *instrumentedBulkEngine) PushBulk(ctx context.Context, index string, docs []domain.Document) error {
	start := time.Now()
	err := i.bulk.PushBulk(ctx, index, docs)
	i.c.observeLatency("bulk", start, err)
	return err
}

func (i *instrumentedEngine) Search(ctx context.Context, index string, q engine.Query) (*engine.Result, error) {
	start := time.Now()
	res, err := i.next.Search(ctx, index, q)
	i.c.observeLatency("search", start, err)
	return res, err
}

func (i *instrumentedEngine) PushRecord(ctx context.Context, index string, doc domain.Document, id string) (string, error) {
	start := time.Now()
	out, err := i.next.PushRecord(ctx, index, doc, id)
	i.c.observeLatency("push", start, err)
	return out, err
}

func (i *instrumentedEngine) UpdateRecord(ctx context.Context, index string, id string, doc domain.Document) error {
	start := time.Now()
	err := i.next.UpdateRecord(ctx, index, id, doc)
	i.c.observeLatency("update", start, err)
	return err
}

func (i *instrumentedEngine) DeleteRecord(ctx context.Context, index string, id string) error {
	start := time.Now()
	err := i.next.DeleteRecord(ctx, index, id)
	i.c.observeLatency("delete", start, err)
	return err
}

func (i *instrumentedEngine) RefreshIndex(ctx context.Context, index string) error {
	start := time.Now()
	err := i.next.RefreshIndex(ctx, index)
	i.c.observeLatency("refresh", start, err)
	return err
}

func (i *instrumentedEngine) CreateIndex(ctx context.Context, index string, s *schema.IndexSchema) error {
	start := time.Now()
	err := i.next.CreateIndex(ctx, index, s)
	i.c.observeLatency("create_index", start, err)
	return err
}

func (i *instrumentedEngine) DeleteIndex(ctx context.Context, index string) error {
	start := time.Now()
	err := i.next.DeleteIndex(ctx, index)
	i.c.observeLatency("delete_index", start, err)
	return err
}
