package in_mem

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/engine"
	"github.com/DjordjeVuckovic/docsearch/internal/schema"
	"github.com/google/uuid"
)

var ErrIndexNotFound = fmt.Errorf("index not found")
var ErrDocumentNotFound = fmt.Errorf("document not found")

type index struct {
	// pending holds writes that are not yet visible to Search
	pending map[string]domain.Document
	visible map[string]domain.Document
	schema  *schema.IndexSchema
}

// Engine keeps indices in memory. Writes become searchable after RefreshIndex,
// the same way an Elasticsearch index behaves between refreshes.
type Engine struct {
	lock    sync.RWMutex
	indices map[string]*index
}

var _ engine.Engine = (*Engine)(nil)

func NewEngine() *Engine {
	return &Engine{
		indices: make(map[string]*index),
	}
}

func (e *Engine) CreateIndex(ctx context.Context, name string, s *schema.IndexSchema) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	if _, ok := e.indices[name]; ok {
		return apperr.NewUpstream("create_index", apperr.KindMalformedQuery, fmt.Errorf("index %q already exists", name))
	}
	e.indices[name] = &index{
		pending: make(map[string]domain.Document),
		visible: make(map[string]domain.Document),
		schema:  s,
	}
	slog.Info("In-memory index created", "index", name)
	return nil
}

func (e *Engine) DeleteIndex(ctx context.Context, name string) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	delete(e.indices, name)
	return nil
}

func (e *Engine) PushRecord(ctx context.Context, name string, doc domain.Document, id string) (string, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	idx, err := e.index(name, "push")
	if err != nil {
		return "", err
	}
	if id == "" {
		id = uuid.NewString()
	}
	idx.pending[id] = maps.Clone(doc)
	return id, nil
}

func (e *Engine) UpdateRecord(ctx context.Context, name string, id string, doc domain.Document) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	idx, err := e.index(name, "update")
	if err != nil {
		return err
	}
	current, ok := idx.pending[id]
	if !ok {
		return apperr.NewUpstream("update", apperr.KindNotFound, fmt.Errorf("%w: %s", ErrDocumentNotFound, id))
	}
	merged := make(domain.Document, len(current)+len(doc))
	maps.Copy(merged, current)
	maps.Copy(merged, doc)
	idx.pending[id] = merged
	return nil
}

func (e *Engine) DeleteRecord(ctx context.Context, name string, id string) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	idx, err := e.index(name, "delete")
	if err != nil {
		return err
	}
	if _, ok := idx.pending[id]; !ok {
		return apperr.NewUpstream("delete", apperr.KindNotFound, fmt.Errorf("%w: %s", ErrDocumentNotFound, id))
	}
	delete(idx.pending, id)
	return nil
}

func (e *Engine) RefreshIndex(ctx context.Context, name string) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	idx, err := e.index(name, "refresh")
	if err != nil {
		return err
	}
	idx.visible = maps.Clone(idx.pending)
	return nil
}

func (e *Engine) Search(ctx context.Context, name string, q engine.Query) (*engine.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.Upstream("search", err)
	}

	e.lock.RLock()
	defer e.lock.RUnlock()

	idx, err := e.index(name, "search")
	if err != nil {
		return nil, err
	}

	var hits []engine.Hit
	if len(q.IDs) > 0 {
		hits, err = matchIDs(idx.visible, q)
	} else {
		hits, err = matchText(idx.visible, q)
	}
	if err != nil {
		return nil, apperr.NewUpstream("search", apperr.KindUnknown, err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})

	total := int64(len(hits))
	return &engine.Result{
		Total: total,
		Hits:  window(hits, q.From, q.Size),
	}, nil
}

func (e *Engine) index(name, op string) (*index, error) {
	idx, ok := e.indices[name]
	if !ok {
		return nil, apperr.NewUpstream(op, apperr.KindNotFound, fmt.Errorf("%w: %s", ErrIndexNotFound, name))
	}
	return idx, nil
}

func matchIDs(docs map[string]domain.Document, q engine.Query) ([]engine.Hit, error) {
	hits := make([]engine.Hit, 0, len(q.IDs))
	for _, id := range q.IDs {
		doc, ok := docs[id]
		if !ok {
			continue
		}
		hit, err := newHit(id, 1, doc, q.Excludes)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func matchText(docs map[string]domain.Document, q engine.Query) ([]engine.Hit, error) {
	terms := tokenize(q.Text)
	if len(terms) == 0 {
		return nil, nil
	}

	var hits []engine.Hit
	for id, doc := range docs {
		tokens := make(map[string]struct{})
		collectTokens(map[string]any(doc), tokens)

		var score float64
		for _, term := range terms {
			if _, ok := tokens[term]; ok {
				score++
			}
		}
		if score == 0 {
			continue
		}
		hit, err := newHit(id, score, doc, q.Excludes)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func newHit(id string, score float64, doc domain.Document, excludes []string) (engine.Hit, error) {
	src := maps.Clone(doc)
	for _, field := range excludes {
		delete(src, field)
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return engine.Hit{}, fmt.Errorf("failed to marshal document %s: %w", id, err)
	}
	return engine.Hit{ID: id, Score: score, Source: raw}, nil
}

func window(hits []engine.Hit, from, size int) []engine.Hit {
	if from < 0 {
		from = 0
	}
	if from >= len(hits) || size <= 0 {
		return []engine.Hit{}
	}
	end := from + size
	if end > len(hits) {
		end = len(hits)
	}
	return hits[from:end]
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func collectTokens(v any, into map[string]struct{}) {
	switch val := v.(type) {
	case string:
		for _, t := range tokenize(val) {
			into[t] = struct{}{}
		}
	case map[string]any:
		for _, inner := range val {
			collectTokens(inner, into)
		}
	case domain.Document:
		for _, inner := range val {
			collectTokens(inner, into)
		}
	case []any:
		for _, inner := range val {
			collectTokens(inner, into)
		}
	}
}
