package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/engine"
	"github.com/DjordjeVuckovic/docsearch/internal/schema"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/update"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
)

// MaxResultWindow is the default index.max_result_window; deeper pages only report the total
const MaxResultWindow = 10000

type Engine struct {
	client       *elasticsearch.TypedClient
	searchFields []string
	indexBuilder *IndexBuilder
}

var _ engine.Engine = (*Engine)(nil)

func NewEngine(config ClientConfig) (*Engine, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	fields := config.SearchFields
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}

	return &Engine{
		client:       client,
		searchFields: fields,
		indexBuilder: NewIndexBuilder(),
	}, nil
}

func (e *Engine) Search(ctx context.Context, index string, q engine.Query) (*engine.Result, error) {
	slog.Debug("Executing es search",
		"index", index,
		"text", q.Text,
		"ids", q.IDs,
		"from", q.From,
		"size", q.Size)

	from, size := resultWindow(q.From, q.Size)
	req := &search.Request{
		From:           &from,
		Size:           &size,
		Query:          e.buildQuery(q),
		TrackTotalHits: true,
	}
	if len(q.Excludes) > 0 {
		req.Source_ = &types.SourceFilter{Excludes: q.Excludes}
	}

	res, err := e.client.Search().Index(index).Request(req).Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "index", index, "text", q.Text)
		return nil, upstream("search", err)
	}

	hits := make([]engine.Hit, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		hit := engine.Hit{Source: h.Source_}
		if h.Id_ != nil {
			hit.ID = *h.Id_
		}
		if h.Score_ != nil {
			hit.Score = float64(*h.Score_)
		}
		hits = append(hits, hit)
	}

	var total int64
	if res.Hits.Total != nil {
		total = res.Hits.Total.Value
	}

	slog.Debug("Es search results fetched", "index", index, "total_matches", total, "returned_count", len(hits))

	return &engine.Result{Total: total, Hits: hits}, nil
}

// resultWindow keeps from+size inside MaxResultWindow. A page past it asks for the total only.
func resultWindow(from, size int) (int, int) {
	if from < 0 {
		from = 0
	}
	if size < 0 {
		size = 0
	}
	if size > MaxResultWindow {
		size = MaxResultWindow
	}
	if from > MaxResultWindow-size {
		return 0, 0
	}
	return from, size
}

func (e *Engine) buildQuery(q engine.Query) *types.Query {
	if len(q.IDs) > 0 {
		return &types.Query{
			Ids: &types.IdsQuery{Values: q.IDs},
		}
	}

	or := operator.Or
	return &types.Query{
		MultiMatch: &types.MultiMatchQuery{
			Query:    q.Text,
			Fields:   e.searchFields,
			Operator: &or,
		},
	}
}

func (e *Engine) PushRecord(ctx context.Context, index string, doc domain.Document, id string) (string, error) {
	req := e.client.Index(index).Document(doc)
	if id != "" {
		req = req.Id(id)
	}

	res, err := req.Do(ctx)
	if err != nil {
		return "", upstream("push", err)
	}

	slog.Info("document indexed successfully", "id", res.Id_, "index", index, "result", res.Result)
	return res.Id_, nil
}

func (e *Engine) UpdateRecord(ctx context.Context, index string, id string, doc domain.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return apperr.NewUpstream("update", apperr.KindMalformedQuery, fmt.Errorf("failed to marshal document: %w", err))
	}

	res, err := e.client.Update(index, id).Request(&update.Request{Doc: body}).Do(ctx)
	if err != nil {
		return upstream("update", err)
	}

	slog.Info("document updated successfully", "id", id, "index", index, "result", res.Result)
	return nil
}

func (e *Engine) DeleteRecord(ctx context.Context, index string, id string) error {
	res, err := e.client.Delete(index, id).Do(ctx)
	if err != nil {
		return upstream("delete", err)
	}

	slog.Info("document deleted successfully", "id", id, "index", index, "result", res.Result)
	return nil
}

func (e *Engine) RefreshIndex(ctx context.Context, index string) error {
	if _, err := e.client.Indices.Refresh().Index(index).Do(ctx); err != nil {
		return upstream("refresh", err)
	}
	return nil
}

func (e *Engine) CreateIndex(ctx context.Context, index string, s *schema.IndexSchema) error {
	settings := e.indexBuilder.buildSettings()
	mappings := e.indexBuilder.buildMapping(s)

	createRes, err := e.client.Indices.Create(index).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return upstream("create_index", err)
	}

	if !createRes.Acknowledged {
		return apperr.NewUpstream("create_index", apperr.KindUnknown, fmt.Errorf("index creation was not acknowledged"))
	}

	slog.Info("Index created successfully", "index", index)
	return nil
}

// EnsureIndex creates the index only when it does not exist yet
func (e *Engine) EnsureIndex(ctx context.Context, index string, s *schema.IndexSchema) error {
	exists, err := e.client.Indices.Exists(index).Do(ctx)
	if err != nil {
		return upstream("index_exists", err)
	}

	if exists {
		slog.Info("Index already exists", "index", index)
		return nil
	}

	return e.CreateIndex(ctx, index, s)
}

func (e *Engine) DeleteIndex(ctx context.Context, index string) error {
	_, err := e.client.Indices.Delete(index).Do(ctx)
	if err != nil {
		if isNotFound(err) {
			slog.Info("Index does not exist, nothing to delete", "index", index)
			return nil
		}
		return upstream("delete_index", err)
	}

	slog.Info("Index deleted", "index", index)
	return nil
}

// Ping reports whether the cluster answers
func (e *Engine) Ping(ctx context.Context) error {
	ok, err := e.client.Ping().Do(ctx)
	if err != nil {
		return upstream("ping", err)
	}
	if !ok {
		return apperr.NewUpstream("ping", apperr.KindConnection, fmt.Errorf("cluster did not answer ping"))
	}
	return nil
}
