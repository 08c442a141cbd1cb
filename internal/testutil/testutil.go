// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"popularvideogames/backend/internal/database"
	"popularvideogames/backend/internal/logger"
	"popularvideogames/backend/internal/models"
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.Nop()
}

// DB opens a fresh, migrated sqlite database in a temp dir and closes it when
// the test ends.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := filepath.Join(tb.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := database.Connect(database.DriverSQLite, dsn, Logger(tb), database.Options{Silent: true})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	tb.Cleanup(func() {
		_ = database.Close(db)
	})
	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

func SeedGame(tb testing.TB, db *gorm.DB, id int64, title, summary string) *models.Game {
	tb.Helper()
	g := &models.Game{GameID: id, Title: title, Summary: summary, SummaryHash: models.HashText(summary)}
	if err := db.Create(g).Error; err != nil {
		tb.Fatalf("seed game: %v", err)
	}
	return g
}

func Count(tb testing.TB, db *gorm.DB, model interface{}) int64 {
	tb.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		tb.Fatalf("count: %v", err)
	}
	return n
}

// ReviewContents returns the review texts of a game ordered by insertion.
func ReviewContents(tb testing.TB, db *gorm.DB, gameID int64) []string {
	tb.Helper()
	var out []string
	if err := db.Model(&models.Review{}).Where("game_id = ?", gameID).Order("id").Pluck("content", &out).Error; err != nil {
		tb.Fatalf("reviews: %v", err)
	}
	return out
}
