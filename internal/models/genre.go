package models

// Genre is a game genre (e.g., "RPG", "Shooter", "Adventure").
type Genre struct {
	Name string `gorm:"primaryKey;size:255"`
}

func (Genre) TableName() string {
	return "genres"
}
