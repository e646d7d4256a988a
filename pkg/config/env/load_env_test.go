package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDotEnv_FromEnvPath(t *testing.T) {
	a := writeEnv(t, "DOCSEARCH_TEST_A=from-a\n")
	b := writeEnv(t, "DOCSEARCH_TEST_B=from-b\n")
	t.Setenv("ENV_PATH", a+", "+b)
	t.Setenv("DOCSEARCH_TEST_A", "")
	t.Setenv("DOCSEARCH_TEST_B", "")
	os.Unsetenv("DOCSEARCH_TEST_A")
	os.Unsetenv("DOCSEARCH_TEST_B")

	require.NoError(t, LoadDotEnv("local", "does-not-exist.env"))
	assert.Equal(t, "from-a", os.Getenv("DOCSEARCH_TEST_A"))
	assert.Equal(t, "from-b", os.Getenv("DOCSEARCH_TEST_B"))
}

func TestLoadDotEnv_ExistingVariablesWin(t *testing.T) {
	path := writeEnv(t, "DOCSEARCH_TEST_PORT=1111\n")
	t.Setenv("ENV_PATH", "")
	t.Setenv("DOCSEARCH_TEST_PORT", "2222")

	require.NoError(t, LoadDotEnv("local", path))
	assert.Equal(t, "2222", os.Getenv("DOCSEARCH_TEST_PORT"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Setenv("ENV_PATH", "")
	missing := filepath.Join(t.TempDir(), "missing.env")

	assert.Error(t, LoadDotEnv("", missing))
	assert.Error(t, LoadDotEnv("local", missing))
	assert.NoError(t, LoadDotEnv("production", missing))
}
