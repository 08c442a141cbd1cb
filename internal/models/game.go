package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Game is one distinct video game. GameID comes from the dataset.
// The (Title, SummaryHash) pair is unique: a game is stored once per
// title and summary.
type Game struct {
	GameID          int64      `gorm:"column:game_id;primaryKey;autoIncrement:false"`
	Title           string     `gorm:"column:game_title;size:255;not null;uniqueIndex:idx_videogames_title_summary,priority:1"`
	ReleaseDate     *time.Time `gorm:"type:date"`
	Rating          *float64
	TimesListed     *int64
	NumberOfReviews *int64
	Summary         string `gorm:"type:text"`
	SummaryHash     string `gorm:"size:64;not null;uniqueIndex:idx_videogames_title_summary,priority:2"`
	Plays           *int64
	Playing         *int64
	Backlogs        *int64
	Wishlist        *int64

	// Owned rows; deleting the game deletes them.
	Reviews     []Review      `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DevelopedBy []DevelopedBy `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	GenreOf     []GenreOf     `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (Game) TableName() string {
	return "videogames"
}

// HashText returns the hex SHA-256 of s. Used for unique indexes over long text.
func HashText(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
