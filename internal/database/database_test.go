package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popularvideogames/backend/internal/logger"
	"popularvideogames/backend/internal/models"
)

func TestTableOptions(t *testing.T) {
	assert.Equal(t, "DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin", tableOptions(DriverMySQL))
	assert.Empty(t, tableOptions(DriverPostgres))
	assert.Empty(t, tableOptions(DriverSQLite))
}

func TestMigrateOwnsChildRowsFromGames(t *testing.T) {
	db, err := Connect(DriverSQLite, filepath.Join(t.TempDir(), "db.sqlite"), logger.Nop(), Options{Silent: true})
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, Migrate(db))
	// Idempotent.
	require.NoError(t, Migrate(db))

	m := db.Migrator()
	for _, fk := range []string{"fk_videogames_reviews", "fk_videogames_developed_by", "fk_videogames_genre_of"} {
		assert.True(t, m.HasConstraint(&models.Game{}, fk), fk)
	}

	require.NoError(t, db.Create(&models.Game{GameID: 1, Title: "Hades", SummaryHash: models.HashText("")}).Error)
	assert.Error(t, db.Create(&models.Review{Content: "r", ContentHash: "h", GameID: 2}).Error)
	require.NoError(t, db.Create(&models.Review{Content: "r", ContentHash: "h", GameID: 1}).Error)

	require.NoError(t, Reset(db))
	tables, err := m.GetTables()
	require.NoError(t, err)
	assert.NotContains(t, tables, "videogames")
}
