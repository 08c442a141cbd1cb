package models

// Review is a user review attached to exactly one game.
// The same content is stored at most once per game.
type Review struct {
	ID          uint   `gorm:"primaryKey"`
	Content     string `gorm:"type:text;not null"`
	ContentHash string `gorm:"size:64;not null;uniqueIndex:idx_reviews_game_content,priority:2"`
	GameID      int64  `gorm:"not null;index;uniqueIndex:idx_reviews_game_content,priority:1"`
}

func (Review) TableName() string {
	return "reviews"
}
