package repository

import (
	"context"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"gorm.io/gorm"
)

type FarmRepository interface {
	Create(ctx context.Context, farm *model.FarmProfile) error
	FindByID(ctx context.Context, id uint64) (*model.FarmProfile, error)
	FindByUserUID(ctx context.Context, uid string) (*model.FarmProfile, error)
	Update(ctx context.Context, farm *model.FarmProfile) error
	AddSales(ctx context.Context, farmID uint64, amount float64) error
	SetDB(db *gorm.DB)
}

type farmRepository struct {
	db *gorm.DB
}

func NewFarmRepository(db *gorm.DB) FarmRepository {
	return &farmRepository{db: db}
}

func (r *farmRepository) Create(ctx context.Context, farm *model.FarmProfile) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(farm).Error
}

func (r *farmRepository) FindByID(ctx context.Context, id uint64) (*model.FarmProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var farm model.FarmProfile
	if err := r.db.WithContext(ctx).First(&farm, id).Error; err != nil {
		return nil, err
	}
	return &farm, nil
}

func (r *farmRepository) FindByUserUID(ctx context.Context, uid string) (*model.FarmProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var farm model.FarmProfile
	if err := r.db.WithContext(ctx).Where("user_uid = ?", uid).First(&farm).Error; err != nil {
		return nil, err
	}
	return &farm, nil
}

// Update writes the profile columns only. Rating, total_reviews and
// total_sales are maintained by ApplyReviewToRating and AddSales; writing
// them here would clobber a concurrent aggregate update.
func (r *farmRepository) Update(ctx context.Context, farm *model.FarmProfile) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Model(&model.FarmProfile{}).
		Where("id = ?", farm.ID).
		Select("farm_name", "farm_location", "description").
		Updates(farm).Error
}

func (r *farmRepository) AddSales(ctx context.Context, farmID uint64, amount float64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Model(&model.FarmProfile{}).
		Where("id = ?", farmID).
		Update("total_sales", gorm.Expr("total_sales + ?", amount)).Error
}

func (r *farmRepository) SetDB(db *gorm.DB) {
	r.db = db
}
