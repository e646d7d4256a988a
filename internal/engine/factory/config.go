package factory

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/docsearch/internal/engine"
	"github.com/DjordjeVuckovic/docsearch/internal/engine/es"
	"github.com/DjordjeVuckovic/docsearch/internal/engine/pg"
	"github.com/DjordjeVuckovic/docsearch/pkg/utils"
)

const DefaultIndexName = "documents"

type EngineConfig struct {
	engine.Type
	IndexName string
	Es        *es.ClientConfig
	Pg        *pg.PoolConfig
}

func LoadEnv() (*EngineConfig, error) {
	engineType := engine.Type(os.Getenv("ENGINE_TYPE"))
	if engineType == "" {
		slog.Error("ENGINE_TYPE environment variable is not set")
		return nil, fmt.Errorf("ENGINE_TYPE environment variable is not set")
	}
	if !engineType.Valid() {
		slog.Error("Invalid ENGINE_TYPE environment variable value", "value", engineType)
		return nil, fmt.Errorf(
			"invalid ENGINE_TYPE environment variable value: %s, expected one of %v",
			engineType,
			[]engine.Type{engine.ES, engine.PG, engine.InMem})
	}

	indexName := os.Getenv("INDEX_NAME")
	if indexName == "" {
		indexName = os.Getenv("ES_INDEX_NAME")
	}
	if indexName == "" {
		indexName = DefaultIndexName
	}

	cfg := &EngineConfig{
		Type:      engineType,
		IndexName: indexName,
	}

	switch engineType {
	case engine.ES:
		esCfg := &es.ClientConfig{
			Addresses:    utils.SplitAndTrim(os.Getenv("ES_ADDRESSES"), ","),
			IndexName:    indexName,
			Username:     os.Getenv("ES_USERNAME"),
			Password:     os.Getenv("ES_PASSWORD"),
			SearchFields: utils.SplitAndTrim(os.Getenv("ES_SEARCH_FIELDS"), ","),
		}
		if raw := os.Getenv("ES_REQUEST_TIMEOUT"); raw != "" {
			timeout, err := time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid ES_REQUEST_TIMEOUT %q: %w", raw, err)
			}
			esCfg.RequestTimeout = timeout
		}
		if len(esCfg.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: ES_ADDRESSES is missing")
		}
		cfg.Es = esCfg

	case engine.PG:
		pgCfg := &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
			Migrate: os.Getenv("PG_MIGRATE") == "true",
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		cfg.Pg = pgCfg
	}

	return cfg, nil
}
