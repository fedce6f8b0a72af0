package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product, imageURLs []string) error
	FindByID(ctx context.Context, id uint64) (*model.Product, error)
	ListMarket(ctx context.Context, limit, offset int, productType, search string) ([]model.Product, int64, error)
	ListByFarm(ctx context.Context, farmID uint64) ([]model.Product, error)
	ListActiveInStockByFarm(ctx context.Context, farmID uint64) ([]model.Product, error)
	CountActiveByFarm(ctx context.Context, farmID uint64) (int64, error)
	// Update writes the editable columns only; available_quantity belongs
	// to the ledger (ReserveStock/ReleaseStock) and is never written here.
	Update(ctx context.Context, product *model.Product) error
	SetActive(ctx context.Context, id uint64, active bool) error
	Delete(ctx context.Context, id uint64) error
	Images(ctx context.Context, productID uint64) ([]model.ProductImage, error)

	// ReserveStock is the ledger's check-and-decrement: a single guarded
	// UPDATE so two racing reservations can never both observe the same
	// stock. Returns the number of rows changed (0 means the guard failed).
	ReserveStock(tx *gorm.DB, productID uint64, quantity int64) (int64, error)
	ReleaseStock(tx *gorm.DB, productID uint64, quantity int64) error

	SetDB(db *gorm.DB)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product, imageURLs []string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		for _, u := range imageURLs {
			img := model.ProductImage{ProductID: product.ID, ImageURL: u}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *productRepository) FindByID(ctx context.Context, id uint64) (*model.Product, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListMarket(ctx context.Context, limit, offset int, productType, search string) ([]model.Product, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_active = ? AND available_quantity > 0", true)
	if productType != "" {
		q = q.Where("product_type = ?", productType)
	}
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("name LIKE ?", "%"+s+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var products []model.Product
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) ListByFarm(ctx context.Context, farmID uint64) ([]model.Product, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var products []model.Product
	if err := r.db.WithContext(ctx).
		Where("farm_id = ?", farmID).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ListActiveInStockByFarm(ctx context.Context, farmID uint64) ([]model.Product, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var products []model.Product
	if err := r.db.WithContext(ctx).
		Where("farm_id = ? AND is_active = ? AND available_quantity > 0", farmID, true).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) CountActiveByFarm(ctx context.Context, farmID uint64) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("farm_id = ? AND is_active = ?", farmID, true).
		Count(&n).Error
	return n, err
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Select("name", "description", "product_type", "price_per_unit", "unit", "harvest_date", "expiry_date", "image_url").
		Updates(product).Error
}

func (r *productRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
}

func (r *productRepository) Images(ctx context.Context, productID uint64) ([]model.ProductImage, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var images []model.ProductImage
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *productRepository) ReserveStock(tx *gorm.DB, productID uint64, quantity int64) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND is_active = ? AND available_quantity >= ?", productID, true, quantity).
		Update("available_quantity", gorm.Expr("available_quantity - ?", quantity))
	return res.RowsAffected, res.Error
}

func (r *productRepository) ReleaseStock(tx *gorm.DB, productID uint64, quantity int64) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", productID).
		Update("available_quantity", gorm.Expr("available_quantity + ?", quantity)).Error
}

func (r *productRepository) SetDB(db *gorm.DB) {
	r.db = db
}
