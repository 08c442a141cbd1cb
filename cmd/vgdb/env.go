package main

import (
	"fmt"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"popularvideogames/backend/internal/config"
	"popularvideogames/backend/internal/database"
	"popularvideogames/backend/internal/logger"
)

// env is what every database command needs. close must be called when done.
type env struct {
	cfg *config.Config
	log *logger.Logger
	db  *gorm.DB
}

func (e *env) close() {
	if e.db != nil {
		_ = database.Close(e.db)
	}
	e.log.Sync()
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cmd.String("config-dir"))
	if err != nil {
		return nil, err
	}
	if d := cmd.String("driver"); d != "" {
		cfg.DatabaseDriver = d
	}
	if dsn := cmd.String("dsn"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	return cfg, nil
}

func openEnv(cmd *cli.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, log, database.Options{})
	if err != nil {
		log.Sync()
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}
