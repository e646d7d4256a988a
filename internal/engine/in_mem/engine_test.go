package in_mem

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/engine"
	"github.com/DjordjeVuckovic/docsearch/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIndex = "documents"

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	e := NewEngine()
	require.NoError(t, e.CreateIndex(context.Background(), testIndex, schema.Default()))
	return e
}

func push(t *testing.T, e *Engine, id string, doc domain.Document) {
	t.Helper()

	_, err := e.PushRecord(context.Background(), testIndex, doc, id)
	require.NoError(t, err)
}

func TestEngine_WritesVisibleAfterRefresh(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	push(t, e, "1", domain.Document{"title": "Climate change report"})

	res, err := e.Search(ctx, testIndex, engine.Query{Text: "climate", Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)

	require.NoError(t, e.RefreshIndex(ctx, testIndex))

	res, err = e.Search(ctx, testIndex, engine.Query{Text: "climate", Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "1", res.Hits[0].ID)
}

func TestEngine_SearchRanksAndWindows(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	push(t, e, "a", domain.Document{"title": "open education"})
	push(t, e, "b", domain.Document{"title": "open education resources", "content": "resources for open courses"})
	push(t, e, "c", domain.Document{"title": "closed"})
	push(t, e, "d", domain.Document{"metadata": map[string]any{"tags": []any{"Open"}}})
	require.NoError(t, e.RefreshIndex(ctx, testIndex))

	res, err := e.Search(ctx, testIndex, engine.Query{Text: "open resources", Size: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.Total)
	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []string{"b", "a", "d"}, ids)
	assert.Equal(t, float64(2), res.Hits[0].Score)

	page, err := e.Search(ctx, testIndex, engine.Query{Text: "open resources", From: 1, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Hits, 1)
	assert.Equal(t, "a", page.Hits[0].ID)

	beyond, err := e.Search(ctx, testIndex, engine.Query{Text: "open", From: 50, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), beyond.Total)
	assert.Empty(t, beyond.Hits)
}

func TestEngine_SearchByIDs(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	push(t, e, "10", domain.Document{"title": "ten", "secret": "x"})
	push(t, e, "11", domain.Document{"title": "eleven"})
	require.NoError(t, e.RefreshIndex(ctx, testIndex))

	res, err := e.Search(ctx, testIndex, engine.Query{IDs: []string{"10", "99"}, Size: 10, Excludes: []string{"secret"}})
	require.NoError(t, err)

	require.Len(t, res.Hits, 1)
	var src map[string]any
	require.NoError(t, json.Unmarshal(res.Hits[0].Source, &src))
	assert.Equal(t, map[string]any{"title": "ten"}, src)
}

func TestEngine_UpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	push(t, e, "1", domain.Document{"title": "draft", "language": "en"})
	require.NoError(t, e.UpdateRecord(ctx, testIndex, "1", domain.Document{"title": "final"}))
	require.NoError(t, e.RefreshIndex(ctx, testIndex))

	res, err := e.Search(ctx, testIndex, engine.Query{IDs: []string{"1"}, Size: 1})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.JSONEq(t, `{"title":"final","language":"en"}`, string(res.Hits[0].Source))
}

func TestEngine_DeleteRecord(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	push(t, e, "1", domain.Document{"title": "gone"})
	require.NoError(t, e.DeleteRecord(ctx, testIndex, "1"))
	require.NoError(t, e.RefreshIndex(ctx, testIndex))

	res, err := e.Search(ctx, testIndex, engine.Query{Text: "gone", Size: 10})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestEngine_PushAssignsID(t *testing.T) {
	e := newTestEngine(t)

	id, err := e.PushRecord(context.Background(), testIndex, domain.Document{"title": "x"}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestEngine_Errors(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	tests := []struct {
		name string
		call func() error
		kind apperr.Kind
	}{
		{
			name: "search missing index",
			call: func() error {
				_, err := e.Search(ctx, "nope", engine.Query{Text: "x", Size: 1})
				return err
			},
			kind: apperr.KindNotFound,
		},
		{
			name: "update missing document",
			call: func() error { return e.UpdateRecord(ctx, testIndex, "404", domain.Document{"a": 1}) },
			kind: apperr.KindNotFound,
		},
		{
			name: "delete missing document",
			call: func() error { return e.DeleteRecord(ctx, testIndex, "404") },
			kind: apperr.KindNotFound,
		},
		{
			name: "create existing index",
			call: func() error { return e.CreateIndex(ctx, testIndex, nil) },
			kind: apperr.KindMalformedQuery,
		},
		{
			name: "cancelled context",
			call: func() error {
				cctx, cancel := context.WithTimeout(ctx, 0)
				defer cancel()
				_, err := e.Search(cctx, testIndex, engine.Query{Text: "x", Size: 1})
				return err
			},
			kind: apperr.KindTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()

			require.Error(t, err)
			kind, ok := apperr.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestEngine_DeleteIndexIgnoresMissing(t *testing.T) {
	e := NewEngine()

	assert.NoError(t, e.DeleteIndex(context.Background(), "never-created"))
}
