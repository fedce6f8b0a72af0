package repository

import (
	"context"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// CreateFromReservation retires the pending reservation and creates the
	// confirmed order in one transaction. Returns gorm.ErrRecordNotFound
	// when the reservation is no longer pending (a concurrent confirm or
	// cancel got there first).
	CreateFromReservation(ctx context.Context, res *model.Reservation, orderNumber string) (*model.Order, error)
	FindByID(ctx context.Context, id uint64) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerUID string) ([]model.Order, error)
	ListByFarm(ctx context.Context, farmID uint64) ([]model.Order, error)
	CountByFarm(ctx context.Context, farmID uint64) (int64, error)
	CountOpenByProduct(ctx context.Context, productID uint64) (int64, error)
	SumDeliveredSalesByFarm(ctx context.Context, farmID uint64) (float64, error)
	// MarkShipped and MarkDelivered are RowsAffected-guarded flips; 0 rows
	// means the order was not in the required state.
	MarkShipped(ctx context.Context, id uint64, carrier, trackingNumber string) (int64, error)
	MarkDelivered(ctx context.Context, id uint64) (int64, error)
	// ExpireConfirmedBefore flips confirmed orders older than the cutoff to
	// expired and releases their stock, one transaction per order.
	ExpireConfirmedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	SetDB(db *gorm.DB)
}

type orderRepository struct {
	db       *gorm.DB
	products ProductRepository
}

func NewOrderRepository(db *gorm.DB, products ProductRepository) OrderRepository {
	return &orderRepository{db: db, products: products}
}

func (r *orderRepository) CreateFromReservation(ctx context.Context, res *model.Reservation, orderNumber string) (*model.Order, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	order := &model.Order{
		OrderNumber:     orderNumber,
		BuyerUID:        res.BuyerUID,
		FarmID:          res.FarmID,
		ProductID:       res.ProductID,
		Quantity:        res.Quantity,
		TotalPrice:      res.TotalPrice,
		ReceiverName:    res.ReceiverName,
		ReceiverPhone:   res.ReceiverPhone,
		DeliveryAddress: res.DeliveryAddress,
		Note:            res.Note,
		Status:          model.OrderStatusConfirmed,
		ConfirmedAt:     time.Now(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("id = ? AND status = ?", res.ID, model.ReservationStatusPending).
			Delete(&model.Reservation{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var o model.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerUID string) ([]model.Order, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Where("buyer_uid = ?", buyerUID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) ListByFarm(ctx context.Context, farmID uint64) ([]model.Order, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Where("farm_id = ?", farmID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) CountByFarm(ctx context.Context, farmID uint64) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("farm_id = ?", farmID).
		Count(&n).Error
	return n, err
}

func (r *orderRepository) CountOpenByProduct(ctx context.Context, productID uint64) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("product_id = ? AND status IN ?", productID, []model.OrderStatus{model.OrderStatusConfirmed, model.OrderStatusShipped}).
		Count(&n).Error
	return n, err
}

func (r *orderRepository) SumDeliveredSalesByFarm(ctx context.Context, farmID uint64) (float64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("farm_id = ? AND status IN ?", farmID, []model.OrderStatus{model.OrderStatusDelivered, model.OrderStatusReviewed}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *orderRepository) MarkShipped(ctx context.Context, id uint64, carrier, trackingNumber string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusConfirmed).
		Updates(map[string]interface{}{
			"status":          model.OrderStatusShipped,
			"carrier":         carrier,
			"tracking_number": trackingNumber,
			"shipped_at":      now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *orderRepository) MarkDelivered(ctx context.Context, id uint64) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusShipped).
		Updates(map[string]interface{}{
			"status":       model.OrderStatusDelivered,
			"delivered_at": now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *orderRepository) ExpireConfirmedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var stale []model.Order
	if err := r.db.WithContext(ctx).
		Where("status = ? AND confirmed_at < ?", model.OrderStatusConfirmed, cutoff).
		Find(&stale).Error; err != nil {
		return 0, err
	}
	var expired int64
	for i := range stale {
		o := stale[i]
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			upd := tx.Model(&model.Order{}).
				Where("id = ? AND status = ?", o.ID, model.OrderStatusConfirmed).
				Update("status", model.OrderStatusExpired)
			if upd.Error != nil {
				return upd.Error
			}
			if upd.RowsAffected == 0 {
				return nil
			}
			expired++
			return r.products.ReleaseStock(tx, o.ProductID, o.Quantity)
		})
		if err != nil {
			return expired, err
		}
	}
	return expired, nil
}

func (r *orderRepository) SetDB(db *gorm.DB) {
	r.db = db
}
