package service

import (
	"context"
	"errors"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/repository"
	"gorm.io/gorm"
)

type CultivarService interface {
	List(ctx context.Context) ([]model.Cultivar, error)
	GetBySlug(ctx context.Context, slug string) (*model.Cultivar, error)
}

type cultivarService struct {
	repo repository.CultivarRepository
}

func NewCultivarService(repo repository.CultivarRepository) CultivarService {
	return &cultivarService{repo: repo}
}

func (s *cultivarService) List(ctx context.Context) ([]model.Cultivar, error) {
	return s.repo.List(ctx)
}

func (s *cultivarService) GetBySlug(ctx context.Context, slug string) (*model.Cultivar, error) {
	c, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
