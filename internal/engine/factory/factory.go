package factory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/docsearch/internal/apperr"
	"github.com/DjordjeVuckovic/docsearch/internal/engine"
	"github.com/DjordjeVuckovic/docsearch/internal/engine/es"
	"github.com/DjordjeVuckovic/docsearch/internal/engine/in_mem"
	"github.com/DjordjeVuckovic/docsearch/internal/engine/pg"
	"github.com/DjordjeVuckovic/docsearch/internal/schema"
	pkgserver "github.com/DjordjeVuckovic/docsearch/pkg/server"
)

// Instance is a configured engine together with its health probe
type Instance struct {
	Engine  engine.Engine
	Health  pkgserver.HealthChecker
	closeFn func()
}

func (i *Instance) Close() {
	if i.closeFn != nil {
		i.closeFn()
	}
}

// NewEngine creates the engine selected by cfg.Type
func NewEngine(ctx context.Context, cfg EngineConfig) (*Instance, error) {
	switch cfg.Type {
	case engine.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		e, err := es.NewEngine(*cfg.Es)
		if err != nil {
			return nil, fmt.Errorf("failed to create Elasticsearch engine: %w", err)
		}
		return &Instance{Engine: e, Health: es.NewHealthChecker(e)}, nil

	case engine.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		e, err := pg.NewEngine(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Instance{Engine: e, Health: pg.NewHealthChecker(pool), closeFn: pool.Close}, nil

	case engine.InMem:
		e := in_mem.NewEngine()
		if err := e.CreateIndex(ctx, cfg.IndexName, schema.Default()); err != nil {
			return nil, err
		}
		slog.Warn("Using in-memory engine, documents are lost on restart", "index", cfg.IndexName)
		return &Instance{Engine: e, Health: pkgserver.NewOkHealthChecker()}, nil

	default:
		return nil, fmt.Errorf(string(engine.ErrUnsupportedEngine), cfg.Type)
	}
}

// EnsureIndex creates the index unless it already exists
func EnsureIndex(ctx context.Context, e engine.Engine, index string, s *schema.IndexSchema) error {
	if esEngine, ok := e.(*es.Engine); ok {
		return esEngine.EnsureIndex(ctx, index, s)
	}

	err := e.CreateIndex(ctx, index, s)
	var ue *apperr.UpstreamError
	if errors.As(err, &ue) && ue.Kind == apperr.KindMalformedQuery {
		slog.Info("Index already exists", "index", index)
		return nil
	}
	return err
}
