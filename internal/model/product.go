package model

import "time"

type ProductType string

const (
	ProductTypeFruit ProductType = "fruit"
	ProductTypeShoot ProductType = "shoot"
)

type Product struct {
	ID                uint64      `gorm:"primaryKey;autoIncrement"`
	FarmID            uint64      `gorm:"column:farm_id;index;not null"`
	Name              string      `gorm:"size:120;not null"`
	Description       string      `gorm:"type:text"`
	ProductType       ProductType `gorm:"column:product_type;size:16;not null"`
	PricePerUnit      float64     `gorm:"column:price_per_unit;not null"`
	AvailableQuantity int64       `gorm:"column:available_quantity;not null"`
	Unit              string      `gorm:"size:32;not null"`
	HarvestDate       time.Time   `gorm:"column:harvest_date"`
	ExpiryDate        *time.Time  `gorm:"column:expiry_date"`
	IsActive          bool        `gorm:"column:is_active;not null;default:true"`
	ImageURL          *string     `gorm:"size:512"`
	CreatedAt         time.Time   `gorm:"autoCreateTime"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
