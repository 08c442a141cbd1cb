package database

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// Pure-Go driver registered as "sqlite"; lets the sqlite dialector run without cgo.
	_ "modernc.org/sqlite"

	"popularvideogames/backend/internal/logger"
	"popularvideogames/backend/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Options tunes Connect. The zero value keeps the defaults.
type Options struct {
	// Silent disables the SQL logger entirely.
	Silent bool
}

// Connect opens a connection to the database described by driver and dsn.
// The caller owns the returned handle and must release it with Close.
func Connect(driver, dsn string, log *logger.Logger, opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	sqlLogger := gormlogger.Default.LogMode(gormlogger.Silent)
	if !opts.Silent {
		sqlLogger = gormlogger.New(
			log.StdLog(),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  isatty.IsTerminal(os.Stdout.Fd()),
			},
		)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         sqlLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// One writer at a time; also keeps in-memory databases on a single connection.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	log.Info("Database connection established.", "driver", driver)
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres, "":
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Models lists every table in dependency order (referenced tables first).
func Models() []interface{} {
	return []interface{}{
		&models.Game{},
		&models.Developer{},
		&models.Genre{},
		&models.Review{},
		&models.DevelopedBy{},
		&models.GenreOf{},
		&models.IngestionRun{},
	}
}

// Migrate creates every table that does not exist yet.
func Migrate(db *gorm.DB) error {
	if opts := tableOptions(db.Dialector.Name()); opts != "" {
		db = db.Set("gorm:table_options", opts)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// tableOptions returns the CREATE TABLE suffix for a dialect. MySQL compares
// strings case-insensitively by default, which would merge titles and names
// that differ only in case; a binary collation keeps them distinct.
// Existing tables keep their collation.
func tableOptions(dialect string) string {
	if dialect == DriverMySQL {
		return "DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"
	}
	return ""
}

// Reset drops every table, dependents first.
func Reset(db *gorm.DB) error {
	tables := Models()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
