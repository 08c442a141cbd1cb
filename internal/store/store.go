// Package store persists ingested games through gorm.
package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"popularvideogames/backend/internal/logger"
	"popularvideogames/backend/internal/models"
)

// ErrAlreadyExists is returned by the Insert and Relate methods when the row
// collides with an existing unique key. Nothing is written in that case.
var ErrAlreadyExists = errors.New("already exists")

// Candidate is a stored game sharing a title with an incoming record.
type Candidate struct {
	GameID  int64  `gorm:"column:game_id"`
	Title   string `gorm:"column:game_title"`
	Summary string `gorm:"column:summary"`
}

// GormStore implements the ingestion storage boundary on a gorm handle,
// usually a transaction opened by InTx.
type GormStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, baseLog *logger.Logger) *GormStore {
	return &GormStore{
		db:  db,
		log: baseLog.With("component", "GormStore"),
	}
}

// InTx runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (s *GormStore) InTx(ctx context.Context, fn func(tx *GormStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, log: s.log})
	})
}

// Titles returns every distinct game title already stored.
func (s *GormStore) Titles(ctx context.Context) ([]string, error) {
	var titles []string
	err := s.db.WithContext(ctx).
		Model(&models.Game{}).
		Distinct().
		Pluck("game_title", &titles).Error
	return titles, err
}

// GamesByTitle returns the stored games with the given title, ordered by id.
func (s *GormStore) GamesByTitle(ctx context.Context, title string) ([]Candidate, error) {
	var out []Candidate
	err := s.db.WithContext(ctx).
		Model(&models.Game{}).
		Select("game_id", "game_title", "summary").
		Where("game_title = ?", title).
		Order("game_id").
		Find(&out).Error
	return out, err
}

func (s *GormStore) InsertGame(ctx context.Context, game *models.Game) error {
	game.SummaryHash = models.HashText(game.Summary)
	return s.insertIgnore(ctx, game)
}

func (s *GormStore) InsertDeveloper(ctx context.Context, name string) error {
	return s.insertIgnore(ctx, &models.Developer{Name: name})
}

func (s *GormStore) InsertGenre(ctx context.Context, name string) error {
	return s.insertIgnore(ctx, &models.Genre{Name: name})
}

func (s *GormStore) RelateDeveloper(ctx context.Context, developer string, gameID int64) error {
	return s.insertIgnore(ctx, &models.DevelopedBy{Developer: developer, GameID: gameID})
}

func (s *GormStore) RelateGenre(ctx context.Context, gameID int64, genre string) error {
	return s.insertIgnore(ctx, &models.GenreOf{GameID: gameID, GenreName: genre})
}

func (s *GormStore) InsertReview(ctx context.Context, content string, gameID int64) error {
	return s.insertIgnore(ctx, &models.Review{
		Content:     content,
		ContentHash: models.HashText(content),
		GameID:      gameID,
	})
}

// RecordRun stores the audit row of an ingestion pass.
func (s *GormStore) RecordRun(ctx context.Context, run *models.IngestionRun) error {
	return s.db.WithContext(ctx).Create(run).Error
}

// insertIgnore inserts value unless it collides with a unique key.
// DO NOTHING keeps the surrounding transaction usable on databases that
// abort a transaction on the first failed statement.
func (s *GormStore) insertIgnore(ctx context.Context, value interface{}) error {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(value)
	if res.Error != nil {
		if isDuplicateKey(res.Error) {
			return ErrAlreadyExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
