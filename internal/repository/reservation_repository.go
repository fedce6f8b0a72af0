package repository

import (
	"context"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	// CreateWithStockDecrement runs the ledger decrement and the
	// reservation insert in one transaction. Returns
	// gorm.ErrRecordNotFound when the stock guard rejects the decrement.
	CreateWithStockDecrement(ctx context.Context, res *model.Reservation) error
	FindByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ListByBuyer(ctx context.Context, buyerUID string) ([]model.Reservation, error)
	ListPendingByFarm(ctx context.Context, farmID uint64) ([]model.Reservation, error)
	CountPendingByFarm(ctx context.Context, farmID uint64) (int64, error)
	CountPendingByProduct(ctx context.Context, productID uint64) (int64, error)
	// CancelPending flips pending to cancelled and re-increments stock.
	// Returns the number of reservations flipped; 0 means another caller
	// already confirmed or cancelled it.
	CancelPending(ctx context.Context, id uint64, reason string) (int64, error)
	SetDB(db *gorm.DB)
}

type reservationRepository struct {
	db       *gorm.DB
	products ProductRepository
}

func NewReservationRepository(db *gorm.DB, products ProductRepository) ReservationRepository {
	return &reservationRepository{db: db, products: products}
}

func (r *reservationRepository) CreateWithStockDecrement(ctx context.Context, res *model.Reservation) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := r.products.ReserveStock(tx, res.ProductID, res.Quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(res).Error
	})
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var res model.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) ListByBuyer(ctx context.Context, buyerUID string) ([]model.Reservation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Reservation
	if err := r.db.WithContext(ctx).
		Where("buyer_uid = ?", buyerUID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reservationRepository) ListPendingByFarm(ctx context.Context, farmID uint64) ([]model.Reservation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Reservation
	if err := r.db.WithContext(ctx).
		Where("farm_id = ? AND status = ?", farmID, model.ReservationStatusPending).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reservationRepository) CountPendingByFarm(ctx context.Context, farmID uint64) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("farm_id = ? AND status = ?", farmID, model.ReservationStatusPending).
		Count(&n).Error
	return n, err
}

func (r *reservationRepository) CountPendingByProduct(ctx context.Context, productID uint64) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("product_id = ? AND status = ?", productID, model.ReservationStatusPending).
		Count(&n).Error
	return n, err
}

func (r *reservationRepository) CancelPending(ctx context.Context, id uint64, reason string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res model.Reservation
		if err := tx.First(&res, id).Error; err != nil {
			return err
		}
		upd := tx.Model(&model.Reservation{}).
			Where("id = ? AND status = ?", id, model.ReservationStatusPending).
			Updates(map[string]interface{}{
				"status":        model.ReservationStatusCancelled,
				"cancel_reason": reason,
			})
		if upd.Error != nil {
			return upd.Error
		}
		rows = upd.RowsAffected
		if rows == 0 {
			return nil
		}
		return r.products.ReleaseStock(tx, res.ProductID, res.Quantity)
	})
	return rows, err
}

func (r *reservationRepository) SetDB(db *gorm.DB) {
	r.db = db
}
