package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/repository"
	"gorm.io/gorm"
)

type FarmService interface {
	UpgradeToFarm(ctx context.Context, uid, farmName, location string) (*model.FarmProfile, error)
	GetByOwner(ctx context.Context, uid string) (*model.FarmProfile, error)
	UpdateProfile(ctx context.Context, uid, farmName, location, description string) (*model.FarmProfile, error)
	GetPublic(ctx context.Context, farmID uint64) (*PublicFarm, error)
	DashboardStats(ctx context.Context, uid string) (*DashboardStats, error)
}

type PublicFarm struct {
	Farm     model.FarmProfile
	Products []model.Product
	LastSeen *time.Time
}

type DashboardStats struct {
	ActiveProducts int64
	TotalOrders    int64
	PendingOrders  int64
	TotalSales     float64
}

type farmService struct {
	farmRepo        repository.FarmRepository
	productRepo     repository.ProductRepository
	reservationRepo repository.ReservationRepository
	orderRepo       repository.OrderRepository
	profileRepo     repository.ProfileRepository
}

func NewFarmService(
	farmRepo repository.FarmRepository,
	productRepo repository.ProductRepository,
	reservationRepo repository.ReservationRepository,
	orderRepo repository.OrderRepository,
	profileRepo repository.ProfileRepository,
) FarmService {
	return &farmService{
		farmRepo:        farmRepo,
		productRepo:     productRepo,
		reservationRepo: reservationRepo,
		orderRepo:       orderRepo,
		profileRepo:     profileRepo,
	}
}

func (s *farmService) UpgradeToFarm(ctx context.Context, uid, farmName, location string) (*model.FarmProfile, error) {
	if uid == "" {
		return nil, ValidationError("uid is required")
	}
	if existing, err := s.farmRepo.FindByUserUID(ctx, uid); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	farmName = strings.TrimSpace(farmName)
	if farmName == "" {
		farmName = "My Farm"
	}
	farm := &model.FarmProfile{
		UserUID:      uid,
		FarmName:     farmName,
		FarmLocation: strings.TrimSpace(location),
	}
	if err := s.farmRepo.Create(ctx, farm); err != nil {
		return nil, err
	}
	if err := s.profileRepo.AddRole(ctx, uid, model.RoleFarm); err != nil {
		return nil, err
	}
	return farm, nil
}

func (s *farmService) GetByOwner(ctx context.Context, uid string) (*model.FarmProfile, error) {
	farm, err := s.farmRepo.FindByUserUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return farm, nil
}

func (s *farmService) UpdateProfile(ctx context.Context, uid, farmName, location, description string) (*model.FarmProfile, error) {
	farm, err := s.farmRepo.FindByUserUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	farmName = strings.TrimSpace(farmName)
	if farmName == "" || len(farmName) > 120 {
		return nil, ValidationError("invalid farm name")
	}
	farm.FarmName = farmName
	farm.FarmLocation = strings.TrimSpace(location)
	farm.Description = strings.TrimSpace(description)
	if err := s.farmRepo.Update(ctx, farm); err != nil {
		return nil, err
	}
	return farm, nil
}

func (s *farmService) GetPublic(ctx context.Context, farmID uint64) (*PublicFarm, error) {
	farm, err := s.farmRepo.FindByID(ctx, farmID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	products, err := s.productRepo.ListActiveInStockByFarm(ctx, farmID)
	if err != nil {
		return nil, err
	}
	pub := &PublicFarm{Farm: *farm, Products: products}
	if profile, err := s.profileRepo.Get(ctx, farm.UserUID); err == nil {
		pub.LastSeen = profile.LastSeen
	}
	return pub, nil
}

func (s *farmService) DashboardStats(ctx context.Context, uid string) (*DashboardStats, error) {
	farm, err := s.farmRepo.FindByUserUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	stats := &DashboardStats{}
	if stats.ActiveProducts, err = s.productRepo.CountActiveByFarm(ctx, farm.ID); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orderRepo.CountByFarm(ctx, farm.ID); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.reservationRepo.CountPendingByFarm(ctx, farm.ID); err != nil {
		return nil, err
	}
	if stats.TotalSales, err = s.orderRepo.SumDeliveredSalesByFarm(ctx, farm.ID); err != nil {
		return nil, err
	}
	return stats, nil
}
