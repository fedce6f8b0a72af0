package model

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a buyer's purchase intent before the farm accepts it.
// Receiver fields are a snapshot taken at reservation time; editing the
// buyer profile afterwards must not change an in-flight reservation.
type Reservation struct {
	ID              uint64            `gorm:"primaryKey;autoIncrement"`
	BuyerUID        string            `gorm:"column:buyer_uid;size:128;index;not null"`
	ProductID       uint64            `gorm:"column:product_id;index;not null"`
	FarmID          uint64            `gorm:"column:farm_id;index;not null"`
	Quantity        int64             `gorm:"not null"`
	TotalPrice      float64           `gorm:"column:total_price;not null"`
	ReceiverName    string            `gorm:"column:receiver_name;size:120;not null"`
	ReceiverPhone   string            `gorm:"column:receiver_phone;size:32;not null"`
	DeliveryAddress string            `gorm:"column:delivery_address;type:text;not null"`
	Note            string            `gorm:"type:text"`
	Status          ReservationStatus `gorm:"size:32;not null"`
	CancelReason    string            `gorm:"column:cancel_reason;size:255"`
	CreatedAt       time.Time         `gorm:"autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime"`
}

func (Reservation) TableName() string {
	return "reservations"
}
