package model

import "time"

// FarmProfile aggregates (Rating, TotalReviews, TotalSales) are derived
// and only ever updated with in-database arithmetic, never read-modify-write.
type FarmProfile struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	UserUID      string    `gorm:"column:user_uid;size:128;uniqueIndex:uk_farm_profiles_user_uid;not null"`
	FarmName     string    `gorm:"column:farm_name;size:120;not null"`
	FarmLocation string    `gorm:"column:farm_location;size:255"`
	Description  string    `gorm:"type:text"`
	Rating       float64   `gorm:"not null;default:0"`
	TotalReviews int64     `gorm:"column:total_reviews;not null;default:0"`
	TotalSales   float64   `gorm:"column:total_sales;not null;default:0"`
	IsVerified   bool      `gorm:"column:is_verified;not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (FarmProfile) TableName() string {
	return "farm_profiles"
}
