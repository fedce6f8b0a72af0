package model

import "time"

// UserProfile holds the buyer's saved delivery details and the best-effort
// presence timestamp. LastSeen is a liveness hint only.
type UserProfile struct {
	UID             string     `gorm:"column:uid;primaryKey;size:128"`
	DisplayName     string     `gorm:"column:display_name;size:120"`
	Phone           string     `gorm:"size:32"`
	DeliveryAddress string     `gorm:"column:delivery_address;type:text"`
	LastSeen        *time.Time `gorm:"column:last_seen"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
