package factory

import (
	"testing"
	"time"

	"github.com/DjordjeVuckovic/docsearch/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENGINE_TYPE", "INDEX_NAME", "ES_INDEX_NAME", "ES_ADDRESSES", "ES_USERNAME",
		"ES_PASSWORD", "ES_SEARCH_FIELDS", "ES_REQUEST_TIMEOUT", "PG_CONNECTION_STRING", "PG_MIGRATE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadEnv_MissingType(t *testing.T) {
	clearEnv(t)

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestLoadEnv_InvalidType(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGINE_TYPE", "solr")

	_, err := LoadEnv()
	assert.ErrorContains(t, err, "invalid ENGINE_TYPE")
}

func TestLoadEnv_Elasticsearch(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGINE_TYPE", "es")
	t.Setenv("ES_ADDRESSES", "http://es1:9200, http://es2:9200")
	t.Setenv("ES_INDEX_NAME", "oer")
	t.Setenv("ES_SEARCH_FIELDS", "title^3,content")
	t.Setenv("ES_REQUEST_TIMEOUT", "5s")

	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, engine.ES, cfg.Type)
	assert.Equal(t, "oer", cfg.IndexName)
	require.NotNil(t, cfg.Es)
	assert.Nil(t, cfg.Pg)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Es.Addresses)
	assert.Equal(t, []string{"title^3", "content"}, cfg.Es.SearchFields)
	assert.Equal(t, 5*time.Second, cfg.Es.RequestTimeout)
}

func TestLoadEnv_ElasticsearchWithoutAddresses(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGINE_TYPE", "es")

	_, err := LoadEnv()
	assert.ErrorContains(t, err, "ES_ADDRESSES")
}

func TestLoadEnv_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGINE_TYPE", "es")
	t.Setenv("ES_ADDRESSES", "http://es:9200")
	t.Setenv("ES_REQUEST_TIMEOUT", "soon")

	_, err := LoadEnv()
	assert.ErrorContains(t, err, "ES_REQUEST_TIMEOUT")
}

func TestLoadEnv_Postgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGINE_TYPE", "pg")

	_, err := LoadEnv()
	require.Error(t, err)

	t.Setenv("PG_CONNECTION_STRING", "postgres://u:p@localhost:5432/docs")
	t.Setenv("PG_MIGRATE", "true")
	t.Setenv("INDEX_NAME", "materials")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, engine.PG, cfg.Type)
	assert.Equal(t, "materials", cfg.IndexName)
	require.NotNil(t, cfg.Pg)
	assert.True(t, cfg.Pg.Migrate)
}

func TestLoadEnv_InMemDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGINE_TYPE", "in_mem")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultIndexName, cfg.IndexName)
	assert.Nil(t, cfg.Es)
	assert.Nil(t, cfg.Pg)
}
