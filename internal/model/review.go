package model

import "time"

type Review struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID   uint64    `gorm:"column:order_id;uniqueIndex:uk_reviews_order_id;not null"`
	FarmID    uint64    `gorm:"column:farm_id;index;not null"`
	BuyerUID  string    `gorm:"column:buyer_uid;size:128;index;not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
