package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := Dialector(&Config{Driver: driver, FilePath: "x.db"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&Config{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewSQLite(t *testing.T) {
	db, err := New(&Config{
		Driver:       "sqlite",
		FilePath:     filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	defer Close(db)

	type probe struct {
		ID   uint
		Name string
	}
	require.NoError(t, AutoMigrate(db, &probe{}))
	require.NoError(t, db.Create(&probe{Name: "a"}).Error)

	var count int64
	require.NoError(t, db.Model(&probe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
