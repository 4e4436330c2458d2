package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STATEMENT_TEST_FROM_FILE=file\nSTATEMENT_TEST_PRESET=file\n"), 0o600))

	t.Setenv("STATEMENT_TEST_PRESET", "process")
	t.Cleanup(func() { _ = os.Unsetenv("STATEMENT_TEST_FROM_FILE") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "file", os.Getenv("STATEMENT_TEST_FROM_FILE"))
	assert.Equal(t, "process", os.Getenv("STATEMENT_TEST_PRESET"), "existing variables are not overridden")
}

func TestLoadDotEnv_MissingFileIsSkipped(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=value\n"), 0o600))
	assert.Error(t, LoadDotEnv(path))
}
