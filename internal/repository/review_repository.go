package repository

import (
	"context"
	"errors"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	// CreateForDeliveredOrder inserts the review, flips the order from
	// delivered to reviewed and folds the rating into the farm aggregate,
	// all in one transaction. The aggregate update is a single UPDATE with
	// in-database arithmetic so concurrent reviews on sibling orders of
	// the same farm cannot lose each other's contribution.
	CreateForDeliveredOrder(ctx context.Context, review *model.Review) error
	FindByOrder(ctx context.Context, orderID uint64) (*model.Review, error)
	ListByFarm(ctx context.Context, farmID uint64) ([]model.Review, error)
	SetDB(db *gorm.DB)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateForDeliveredOrder(ctx context.Context, review *model.Review) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upd := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", review.OrderID, model.OrderStatusDelivered).
			Update("status", model.OrderStatusReviewed)
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return tx.Model(&model.FarmProfile{}).
			Where("id = ?", review.FarmID).
			Updates(map[string]interface{}{
				"rating":        gorm.Expr("(rating * total_reviews + ?) / (total_reviews + 1)", float64(review.Rating)),
				"total_reviews": gorm.Expr("total_reviews + 1"),
			}).Error
	})
}

func (r *reviewRepository) FindByOrder(ctx context.Context, orderID uint64) (*model.Review, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rev model.Review
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&rev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rev, nil
}

func (r *reviewRepository) ListByFarm(ctx context.Context, farmID uint64) ([]model.Review, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Review
	if err := r.db.WithContext(ctx).
		Where("farm_id = ?", farmID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewRepository) SetDB(db *gorm.DB) {
	r.db = db
}
