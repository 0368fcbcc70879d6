package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 50053, cfg.GRPC.Port)
	assert.Equal(t, 24*time.Hour, cfg.Ledger.TTL)
	assert.Equal(t, 1000, cfg.Batch.MaxCount)
	assert.Equal(t, 4096, cfg.Batch.MaxBitStrength)
	assert.Equal(t, LedgerBackendRedis, cfg.Ledger.Backend)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./data/uid.db", cfg.Database.FilePath)
	assert.Len(t, cfg.Profiles, len(DefaultProfiles))

	session := cfg.Profiles["session"]
	assert.Equal(t, "random", session.Kind)
	assert.Equal(t, "base62", session.Alphabet)
	require.NotNil(t, session.BitStrength)
	assert.Equal(t, 256, *session.BitStrength)
	assert.Nil(t, session.Length)
	assert.True(t, session.Unique)

	cookie := cfg.Profiles["cookie"]
	assert.Nil(t, cookie.BitStrength)
	require.NotNil(t, cookie.Length)
	assert.Equal(t, 32, *cookie.Length)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
	yaml := `
ledger:
  enabled: true
profiles:
  invite:
    kind: random
    alphabet: upper36
    length: 10
  broken:
    kind: random
    alphabet: 42
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("PORT", "9999")
	t.Setenv("LEDGER_TTL", "90m")
	t.Setenv("LEDGER_BACKEND", "database")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.True(t, cfg.Ledger.Enabled)
	assert.Equal(t, 90*time.Minute, cfg.Ledger.TTL)
	assert.Equal(t, LedgerBackendDatabase, cfg.Ledger.Backend)
	assert.Equal(t, "postgres", cfg.Database.Driver)

	invite := cfg.Profiles["invite"]
	assert.Equal(t, "upper36", invite.Alphabet)
	require.NotNil(t, invite.Length)
	assert.Equal(t, 10, *invite.Length)

	assert.Equal(t, 42, cfg.Profiles["broken"].Alphabet)

	// defaults survive alongside file profiles
	assert.Contains(t, cfg.Profiles, "default")
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
