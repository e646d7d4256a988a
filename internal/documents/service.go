package documents

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/engine"
	"github.com/DjordjeVuckovic/docsearch/pkg/pagination"
)

// Service applies document operations to a single index.
// Every write is followed by an index refresh so it is searchable on return.
type Service struct {
	engine engine.Engine
	index  string
}

func NewService(e engine.Engine, index string) *Service {
	return &Service{
		engine: e,
		index:  index,
	}
}

func (s *Service) Index() string {
	return s.index
}

func (s *Service) Search(ctx context.Context, text string, w pagination.Window) (*engine.Result, error) {
	return s.engine.Search(ctx, s.index, engine.Query{
		Text: text,
		From: w.Offset,
		Size: w.Size,
	})
}

// Get returns the document stored under id, or nil when there is none
func (s *Service) Get(ctx context.Context, id int64) (*engine.Hit, error) {
	res, err := s.engine.Search(ctx, s.index, engine.Query{
		IDs:  []string{strconv.FormatInt(id, 10)},
		Size: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Hits) == 0 {
		return nil, nil
	}
	return &res.Hits[0], nil
}

// Push stores doc under its document_id, or under an engine assigned id when it has none
func (s *Service) Push(ctx context.Context, doc domain.Document) (string, error) {
	docID, _ := doc.ID()

	id, err := s.engine.PushRecord(ctx, s.index, doc, docID)
	if err != nil {
		return "", err
	}
	if err := s.engine.RefreshIndex(ctx, s.index); err != nil {
		return "", err
	}

	slog.Debug("Document pushed", "index", s.index, "id", id)
	return id, nil
}

func (s *Service) Update(ctx context.Context, id int64, doc domain.Document) error {
	if err := s.engine.UpdateRecord(ctx, s.index, strconv.FormatInt(id, 10), doc); err != nil {
		return err
	}
	return s.engine.RefreshIndex(ctx, s.index)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.engine.DeleteRecord(ctx, s.index, strconv.FormatInt(id, 10)); err != nil {
		return err
	}
	return s.engine.RefreshIndex(ctx, s.index)
}

// PushAll stores docs with a single bulk request when the engine supports it
func (s *Service) PushAll(ctx context.Context, docs []domain.Document) error {
	if bulk, ok := s.engine.(engine.BulkPusher); ok {
		if err := bulk.PushBulk(ctx, s.index, docs); err != nil {
			return err
		}
		return s.engine.RefreshIndex(ctx, s.index)
	}

	for i, doc := range docs {
		docID, _ := doc.ID()
		if _, err := s.engine.PushRecord(ctx, s.index, doc, docID); err != nil {
			return fmt.Errorf("failed to push document %d: %w", i, err)
		}
	}
	return s.engine.RefreshIndex(ctx, s.index)
}

// Format converts engine hits into the public response shape
func Format(hits []engine.Hit) []domain.FormattedDocument {
	out := make([]domain.FormattedDocument, 0, len(hits))
	for _, h := range hits {
		out = append(out, FormatHit(h))
	}
	return out
}

func FormatHit(h engine.Hit) domain.FormattedDocument {
	return domain.FormattedDocument{
		ID:       h.ID,
		Weight:   h.Score,
		Document: h.Source,
	}
}
