package model

import "time"

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusReviewed  OrderStatus = "reviewed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusExpired   OrderStatus = "expired"
)

// Order is the successor of a confirmed Reservation. The reservation row
// is deleted in the same transaction that creates the order, so the two
// are never live at the same time for one purchase intent.
type Order struct {
	ID              uint64      `gorm:"primaryKey;autoIncrement"`
	OrderNumber     string      `gorm:"column:order_number;size:64;uniqueIndex:uk_orders_number;not null"`
	BuyerUID        string      `gorm:"column:buyer_uid;size:128;index;not null"`
	FarmID          uint64      `gorm:"column:farm_id;index;not null"`
	ProductID       uint64      `gorm:"column:product_id;index;not null"`
	Quantity        int64       `gorm:"not null"`
	TotalPrice      float64     `gorm:"column:total_price;not null"`
	ReceiverName    string      `gorm:"column:receiver_name;size:120;not null"`
	ReceiverPhone   string      `gorm:"column:receiver_phone;size:32;not null"`
	DeliveryAddress string      `gorm:"column:delivery_address;type:text;not null"`
	Note            string      `gorm:"type:text"`
	Status          OrderStatus `gorm:"size:32;index;not null"`
	Carrier         string      `gorm:"size:64"`
	TrackingNumber  string      `gorm:"column:tracking_number;size:64"`
	ConfirmedAt     time.Time   `gorm:"column:confirmed_at"`
	ShippedAt       *time.Time  `gorm:"column:shipped_at"`
	DeliveredAt     *time.Time  `gorm:"column:delivered_at"`
	CreatedAt       time.Time   `gorm:"autoCreateTime"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
