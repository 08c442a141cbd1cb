package models

// Developer is a studio credited on one or more games.
type Developer struct {
	Name string `gorm:"primaryKey;size:255"`
}

func (Developer) TableName() string {
	return "developers"
}
