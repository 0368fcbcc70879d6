package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	v, err := Load(t.TempDir(), "nope")
	require.NoError(t, err)
	assert.Empty(t, v.ConfigFileUsed())
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "svc.yaml"), []byte("server:\n  port: 9100\n"), 0o600))

	v, err := Load(dir, "svc")
	require.NoError(t, err)
	assert.Equal(t, 9100, v.GetInt("server.port"))
}

func TestLoadExplicitFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(file, []byte("log:\n  level: debug\n"), 0o600))
	t.Setenv(EnvConfigFile, file)

	v, err := Load("./does-not-exist", "config")
	require.NoError(t, err)
	assert.Equal(t, "debug", v.GetString("log.level"))
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7000")
	v, err := Load(t.TempDir(), "config")
	require.NoError(t, err)
	assert.Equal(t, 7000, v.GetInt("server.port"))
}

func TestLoadBrokenFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server: [\n"), 0o600))
	t.Setenv(EnvConfigFile, file)

	_, err := Load(".", "config")
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("UID_TEST_VALUE", "x")
	assert.Equal(t, "x", GetEnv("UID_TEST_VALUE", "y"))
	assert.Equal(t, "y", GetEnv("UID_TEST_UNSET", "y"))
}
