package models

import (
	"time"

	"github.com/google/uuid"
)

// IngestionRun records the counters of one committed ingestion pass.
type IngestionRun struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Source     string    `gorm:"size:512" json:"source"`
	Layout     string    `gorm:"size:32" json:"layout"`
	RowsRead   int       `json:"rows_read"`
	Inserted   int       `json:"rows_inserted"`
	Duplicates int       `json:"rows_duplicate"`
	Rejected   int       `json:"rows_rejected"`
	StartedAt  time.Time `gorm:"not null" json:"started_at"`
	FinishedAt time.Time `gorm:"not null;index" json:"finished_at"`
}
