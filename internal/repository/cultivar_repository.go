package repository

import (
	"context"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CultivarRepository interface {
	List(ctx context.Context) ([]model.Cultivar, error)
	FindBySlug(ctx context.Context, slug string) (*model.Cultivar, error)
	UpsertBySlug(ctx context.Context, cultivar *model.Cultivar) error
	SetDB(db *gorm.DB)
}

type cultivarRepository struct {
	db *gorm.DB
}

func NewCultivarRepository(db *gorm.DB) CultivarRepository {
	return &cultivarRepository{db: db}
}

func (r *cultivarRepository) List(ctx context.Context) ([]model.Cultivar, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Cultivar
	if err := r.db.WithContext(ctx).Order("thai_name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *cultivarRepository) FindBySlug(ctx context.Context, slug string) (*model.Cultivar, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var c model.Cultivar
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cultivarRepository) UpsertBySlug(ctx context.Context, cultivar *model.Cultivar) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "thai_name", "description", "image_url",
		}),
	}).Create(cultivar).Error
}

func (r *cultivarRepository) SetDB(db *gorm.DB) {
	r.db = db
}
