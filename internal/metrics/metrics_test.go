package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/DjordjeVuckovic/docsearch/internal/documents"
	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/engine"
	"github.com/DjordjeVuckovic/docsearch/internal/engine/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestCollector_ObserveUpstream(t *testing.T) {
	c := New()

	c.ObserveUpstream(&apperr.UpstreamError{Op: "search", Kind: apperr.KindTimeout, Err: errors.New("slow")})
	c.ObserveUpstream(&apperr.UpstreamError{Op: "search", Kind: apperr.KindTimeout, Err: errors.New("slow")})
	c.ObserveUpstream(&apperr.UpstreamError{Op: "push", Kind: apperr.KindConnection, Err: errors.New("down")})
	c.ObserveUpstream(nil)

	body := scrape(t, c)
	assert.Contains(t, body, `docsearch_upstream_errors_total{kind="timeout",op="search"} 2`)
	assert.Contains(t, body, `docsearch_upstream_errors_total{kind="connection",op="push"} 1`)
}

func TestCollector_Instrument(t *testing.T) {
	ctx := context.Background()
	c := New()
	e := c.Instrument(in_mem.NewEngine())

	require.NoError(t, e.CreateIndex(ctx, "docs", nil))
	_, err := e.Search(ctx, "docs", engine.Query{Text: "x", Size: 10})
	require.NoError(t, err)
	_, err = e.Search(ctx, "missing", engine.Query{Text: "x", Size: 10})
	require.Error(t, err)

	body := scrape(t, c)
	assert.Contains(t, body, `docsearch_engine_request_duration_seconds_count{op="search",outcome="ok"} 1`)
	assert.Contains(t, body, `docsearch_engine_request_duration_seconds_count{op="search",outcome="error"} 1`)
	assert.Contains(t, body, `docsearch_engine_request_duration_seconds_count{op="create_index",outcome="ok"} 1`)
}

func TestCollector_Isolated(t *testing.T) {
	a, b := New(), New()
	a.ObserveUpstream(&apperr.UpstreamError{Op: "search", Kind: apperr.KindMalformedQuery})

	assert.Contains(t, scrape(t, a), `docsearch_upstream_errors_total{kind="malformed_query",op="search"} 1`)
	assert.NotContains(t, scrape(t, b), `op="search"`)
}

type bulkEngine struct {
	*in_mem.Engine
	batches int
}

func (b *bulkEngine) PushBulk(ctx context.Context, index string, docs []domain.Document) error {
	b.batches++
	for _, doc := range docs {
		id, _ := doc.ID()
		if _, err := b.PushRecord(ctx, index, doc, id); err != nil {
			return err
		}
	}
	return nil
}

func TestCollector_InstrumentKeepsBulkPusher(t *testing.T) {
	tests := []struct {
		name     string
		next     engine.Engine
		wantBulk bool
	}{
		{name: "bulk engine", next: &bulkEngine{Engine: in_mem.NewEngine()}, wantBulk: true},
		{name: "plain engine", next: in_mem.NewEngine(), wantBulk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := New().Instrument(tt.next).(engine.BulkPusher)
			assert.Equal(t, tt.wantBulk, ok)
		})
	}
}

func TestCollector_InstrumentedPushAllUsesBulk(t *testing.T) {
	ctx := context.Background()
	c := New()
	next := &bulkEngine{Engine: in_mem.NewEngine()}
	require.NoError(t, next.CreateIndex(ctx, "docs", nil))

	svc := documents.NewService(c.Instrument(next), "docs")
	docs := []domain.Document{
		{"document_id": int64(1), "title": "first"},
		{"document_id": int64(2), "title": "second"},
	}
	require.NoError(t, svc.PushAll(ctx, docs))

	assert.Equal(t, 1, next.batches)
	assert.Contains(t, scrape(t, c), `docsearch_engine_request_duration_seconds_count{op="bulk",outcome="ok"} 1`)
}
