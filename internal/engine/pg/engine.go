package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/DjordjeVuckovic/docsearch/internal/domain"
	"github.com/DjordjeVuckovic/docsearch/internal/engine"
	"github.com/DjordjeVuckovic/docsearch/internal/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tsVector = `jsonb_to_tsvector('simple'::regconfig, body, '["string"]'::jsonb)`

var ErrIndexNotFound = fmt.Errorf("index not found")
var ErrDocumentNotFound = fmt.Errorf("document not found")

// Engine stores documents as JSONB rows and ranks them with PostgreSQL full-text search.
// Writes are visible immediately, RefreshIndex only checks that the index exists.
type Engine struct {
	db *pgxpool.Pool
}

var _ engine.Engine = (*Engine)(nil)

func NewEngine(pool *ConnectionPool) (*Engine, error) {
	return &Engine{db: pool.conn}, nil
}

func (e *Engine) Search(ctx context.Context, index string, q engine.Query) (*engine.Result, error) {
	slog.Debug("Executing pg search", "index", index, "text", q.Text, "ids", q.IDs, "from", q.From, "size", q.Size)

	if err := e.ensureIndex(ctx, index, "search"); err != nil {
		return nil, err
	}

	excludes := q.Excludes
	if excludes == nil {
		excludes = []string{}
	}

	var (
		countSQL   string
		searchSQL  string
		countArgs  []any
		searchArgs []any
	)
	if len(q.IDs) > 0 {
		countSQL = `SELECT COUNT(*) FROM search_documents WHERE index_name = $1 AND id = ANY($2)`
		countArgs = []any{index, q.IDs}
		searchSQL = `
			SELECT id, body - $3::text[], 1.0::float8 AS score
			FROM search_documents
			WHERE index_name = $1 AND id = ANY($2)
			ORDER BY id
			OFFSET $4 LIMIT $5
		`
		searchArgs = []any{index, q.IDs, excludes, q.From, q.Size}
	} else {
		countSQL = `
			SELECT COUNT(*)
			FROM search_documents
			WHERE index_name = $1 AND ` + tsVector + ` @@ plainto_tsquery('simple', $2)
		`
		countArgs = []any{index, q.Text}
		searchSQL = `
			SELECT id, body - $3::text[], ts_rank(` + tsVector + `, plainto_tsquery('simple', $2))::float8 AS score
			FROM search_documents
			WHERE index_name = $1 AND ` + tsVector + ` @@ plainto_tsquery('simple', $2)
			ORDER BY score DESC, id
			OFFSET $4 LIMIT $5
		`
		searchArgs = []any{index, q.Text, excludes, q.From, q.Size}
	}

	var total int64
	if err := e.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		slog.Error("Failed to count pg search matches", "error", err, "index", index)
		return nil, upstream("search", err)
	}

	rows, err := e.db.Query(ctx, searchSQL, searchArgs...)
	if err != nil {
		return nil, upstream("search", err)
	}
	defer rows.Close()

	hits := make([]engine.Hit, 0, q.Size)
	for rows.Next() {
		var (
			hit  engine.Hit
			body []byte
		)
		if err := rows.Scan(&hit.ID, &body, &hit.Score); err != nil {
			return nil, upstream("search", fmt.Errorf("failed to scan search row: %w", err))
		}
		hit.Source = json.RawMessage(body)
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("search", err)
	}

	slog.Debug("Pg search results fetched", "index", index, "total_matches", total, "returned_count", len(hits))

	return &engine.Result{Total: total, Hits: hits}, nil
}

func (e *Engine) PushRecord(ctx context.Context, index string, doc domain.Document, id string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", apperr.NewUpstream("push", apperr.KindMalformedQuery, fmt.Errorf("failed to marshal document: %w", err))
	}

	cmd := `
		INSERT INTO search_documents (index_name, id, body)
		VALUES ($1, $2, $3)
		ON CONFLICT (index_name, id) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
	`
	if _, err := e.db.Exec(ctx, cmd, index, id, body); err != nil {
		return "", upstream("push", err)
	}

	slog.Info("document stored successfully", "id", id, "index", index)
	return id, nil
}

func (e *Engine) UpdateRecord(ctx context.Context, index string, id string, doc domain.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return apperr.NewUpstream("update", apperr.KindMalformedQuery, fmt.Errorf("failed to marshal document: %w", err))
	}

	tag, err := e.db.Exec(ctx, `
		UPDATE search_documents
		SET body = body || $3::jsonb, updated_at = now()
		WHERE index_name = $1 AND id = $2
	`, index, id, body)
	if err != nil {
		return upstream("update", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewUpstream("update", apperr.KindNotFound, fmt.Errorf("%w: %s", ErrDocumentNotFound, id))
	}
	return nil
}

func (e *Engine) DeleteRecord(ctx context.Context, index string, id string) error {
	tag, err := e.db.Exec(ctx, `DELETE FROM search_documents WHERE index_name = $1 AND id = $2`, index, id)
	if err != nil {
		return upstream("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewUpstream("delete", apperr.KindNotFound, fmt.Errorf("%w: %s", ErrDocumentNotFound, id))
	}
	return nil
}

func (e *Engine) RefreshIndex(ctx context.Context, index string) error {
	return e.ensureIndex(ctx, index, "refresh")
}

func (e *Engine) CreateIndex(ctx context.Context, index string, s *schema.IndexSchema) error {
	if s == nil {
		s = schema.Default()
	}
	schemaJSON, err := json.Marshal(s)
	if err != nil {
		return apperr.NewUpstream("create_index", apperr.KindMalformedQuery, fmt.Errorf("failed to marshal schema: %w", err))
	}

	if _, err := e.db.Exec(ctx, `INSERT INTO search_indices (name, schema) VALUES ($1, $2)`, index, schemaJSON); err != nil {
		return upstream("create_index", err)
	}

	slog.Info("Index created successfully", "index", index)
	return nil
}

func (e *Engine) DeleteIndex(ctx context.Context, index string) error {
	if _, err := e.db.Exec(ctx, `DELETE FROM search_indices WHERE name = $1`, index); err != nil {
		return upstream("delete_index", err)
	}
	return nil
}

// PushBulk copies docs in a single transaction, replacing documents with the same id
func (e *Engine) PushBulk(ctx context.Context, index string, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, doc := range docs {
		id, ok := doc.ID()
		if !ok {
			id = uuid.NewString()
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return apperr.NewUpstream("bulk", apperr.KindMalformedQuery, fmt.Errorf("failed to marshal document %d: %w", i, err))
		}
		batch.Queue(`
			INSERT INTO search_documents (index_name, id, body)
			VALUES ($1, $2, $3)
			ON CONFLICT (index_name, id) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
		`, index, id, body)
	}

	err := pgx.BeginFunc(ctx, e.db, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return upstream("bulk", fmt.Errorf("failed to bulk insert documents: %w", err))
	}

	slog.Info("Bulk insert completed", "total", len(docs), "index", index)
	return nil
}

func (e *Engine) ensureIndex(ctx context.Context, index, op string) error {
	var exists bool
	if err := e.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM search_indices WHERE name = $1)`, index).Scan(&exists); err != nil {
		return upstream(op, err)
	}
	if !exists {
		return apperr.NewUpstream(op, apperr.KindNotFound, fmt.Errorf("%w: %s", ErrIndexNotFound, index))
	}
	return nil
}
