package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/DjordjeVuckovic/docsearch/internal/documents"
	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/engine/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *documents.Service {
	t.Helper()
	e := in_mem.NewEngine()
	require.NoError(t, e.CreateIndex(context.Background(), "documents", nil))
	return documents.NewService(e, "documents")
}

func TestHandler_AppliesEvents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	h := NewHandler(store)

	require.NoError(t, h.Handle(ctx, []byte(`{"op":"push","document":{"document_id":5,"title":"geometry"}}`)))
	hit, err := store.Get(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, hit)

	require.NoError(t, h.Handle(ctx, []byte(`{"op":"update","document_id":5,"document":{"level":"intro"}}`)))
	hit, err = store.Get(ctx, 5)
	require.NoError(t, err)
	assert.JSONEq(t, `{"document_id":5,"title":"geometry","level":"intro"}`, string(hit.Source))

	require.NoError(t, h.Handle(ctx, []byte(`{"op":"delete","document_id":5}`)))
	hit, err = store.Get(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, hit)
}

func TestHandler_ReportsUpstreamFailures(t *testing.T) {
	var observed []*apperr.UpstreamError
	h := NewHandler(newTestStore(t), func(ue *apperr.UpstreamError) {
		observed = append(observed, ue)
	})

	err := h.Handle(context.Background(), []byte(`{"op":"delete","document_id":77}`))
	require.Error(t, err)
	require.Len(t, observed, 1)
	assert.Equal(t, apperr.KindNotFound, observed[0].Kind)
}

func TestHandler_InvalidEvent(t *testing.T) {
	var observed int
	h := NewHandler(newTestStore(t), func(*apperr.UpstreamError) { observed++ })

	err := h.Handle(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.Zero(t, observed)
}

type recordingStore struct {
	pushed  []domain.Document
	deleted []int64
	err     error
}

func (s *recordingStore) Push(ctx context.Context, doc domain.Document) (string, error) {
	s.pushed = append(s.pushed, doc)
	return "1", s.err
}

func (s *recordingStore) Update(ctx context.Context, id int64, doc domain.Document) error {
	return s.err
}

func (s *recordingStore) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func TestHandler_PlainStoreError(t *testing.T) {
	store := &recordingStore{err: errors.New("boom")}
	h := NewHandler(store)

	err := h.Handle(context.Background(), []byte(`{"op":"push","document":{"a":"b"}}`))
	assert.EqualError(t, err, "boom")
	assert.Len(t, store.pushed, 1)
}
