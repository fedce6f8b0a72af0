package model

import "time"

// Cultivar is read-only banana reference data. Rows are loaded by
// cmd/seed and looked up by the detection flow via Slug.
type Cultivar struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Slug        string    `gorm:"size:64;uniqueIndex:uk_cultivars_slug;not null"`
	Name        string    `gorm:"size:120;not null"`
	ThaiName    string    `gorm:"column:thai_name;size:120;not null"`
	Description string    `gorm:"type:text"`
	ImageURL    *string   `gorm:"size:512"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Cultivar) TableName() string {
	return "cultivars"
}
