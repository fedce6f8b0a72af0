package model

import "time"

type ProductImage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ProductID uint64    `gorm:"column:product_id;not null;index:idx_product_images_product_id"`
	ImageURL  string    `gorm:"column:image_url;size:512;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
