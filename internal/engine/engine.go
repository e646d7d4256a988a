package engine

import (
	"context"
	"encoding/json"

	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/schema"
)

// Query is the engine-neutral description of a search request.
// When IDs is set the engine matches documents by id and ignores Text.
type Query struct {
	Text     string
	IDs      []string
	From     int
	Size     int
	Excludes []string
}

// Hit is a single matched document with its relevance score
type Hit struct {
	ID     string          `json:"id"`
	Score  float64         `json:"score"`
	Source json.RawMessage `json:"source"`
}

// Result carries one page of hits and the total number of matches
type Result struct {
	Total int64 `json:"total"`
	Hits  []Hit `json:"hits"`
}

// Engine is the external search engine holding the document index.
// Every failure is returned as an *apperr.UpstreamError.
type Engine interface {
	Search(ctx context.Context, index string, q Query) (*Result, error)
	// PushRecord stores doc under id, or under an engine assigned id when id is empty
	PushRecord(ctx context.Context, index string, doc domain.Document, id string) (string, error)
	// UpdateRecord merges doc into the stored document
	UpdateRecord(ctx context.Context, index string, id string, doc domain.Document) error
	DeleteRecord(ctx context.Context, index string, id string) error
	// RefreshIndex makes all previous writes visible to Search
	RefreshIndex(ctx context.Context, index string) error
	CreateIndex(ctx context.Context, index string, s *schema.IndexSchema) error
	// DeleteIndex removes the index, a missing index is not an error
	DeleteIndex(ctx context.Context, index string) error
}

// BulkPusher is implemented by engines that can store many documents in one round trip
type BulkPusher interface {
	PushBulk(ctx context.Context, index string, docs []domain.Document) error
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

func (t Type) Valid() bool {
	return t == ES || t == PG || t == InMem
}

type Error string

const (
	ErrUnsupportedEngine Error = "unsupported engine type: %s"
)

func (e Error) Error() string {
	return string(e)
}
