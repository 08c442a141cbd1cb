package models

// DevelopedBy links a developer to a game.
// The primary key is a composite of (Developer, GameID) to ensure uniqueness.
type DevelopedBy struct {
	Developer string `gorm:"column:developer;primaryKey;size:255"`
	GameID    int64  `gorm:"primaryKey;autoIncrement:false"`

	DeveloperRef Developer `gorm:"foreignKey:Developer;references:Name;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (DevelopedBy) TableName() string {
	return "developed_by"
}

// GenreOf links a game to a genre.
type GenreOf struct {
	GameID    int64  `gorm:"primaryKey;autoIncrement:false"`
	GenreName string `gorm:"column:genre_name;primaryKey;size:255"`

	GenreRef Genre `gorm:"foreignKey:GenreName;references:Name;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (GenreOf) TableName() string {
	return "genre_of"
}
