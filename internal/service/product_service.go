package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/repository"
	"gorm.io/gorm"
)

var numericOnly = regexp.MustCompile(`^[0-9]+$`)

type ProductInput struct {
	Name         string
	Description  string
	ProductType  string
	PricePerUnit float64
	Quantity     int64
	Unit         string
	HarvestDate  time.Time
	ExpiryDate   *time.Time
	ImageURL     *string
	ImageURLs    []string
}

type ProductService interface {
	Create(ctx context.Context, ownerUID string, in ProductInput) (*model.Product, error)
	Update(ctx context.Context, ownerUID string, productID uint64, in ProductInput) (*model.Product, error)
	Delete(ctx context.Context, ownerUID string, productID uint64) error
	ToggleActive(ctx context.Context, ownerUID string, productID uint64) (bool, error)
	Get(ctx context.Context, id uint64) (*ProductDetail, error)
	ListMarket(ctx context.Context, limit, offset int, productType, search string) ([]model.Product, int64, error)
	ListOwn(ctx context.Context, ownerUID string) ([]model.Product, error)
}

type ProductDetail struct {
	Product model.Product
	Images  []model.ProductImage
	Farm    *model.FarmProfile
}

type productService struct {
	productRepo     repository.ProductRepository
	orderRepo       repository.OrderRepository
	reservationRepo repository.ReservationRepository
	farmRepo        repository.FarmRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	reservationRepo repository.ReservationRepository,
	farmRepo repository.FarmRepository,
) ProductService {
	return &productService{
		productRepo:     productRepo,
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
		farmRepo:        farmRepo,
	}
}

func validateProductInput(in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" || len(in.Name) > 120 {
		return ValidationError("invalid name")
	}
	if numericOnly.MatchString(in.Name) {
		return ValidationError("name must not be numeric only")
	}
	if in.ProductType != string(model.ProductTypeFruit) && in.ProductType != string(model.ProductTypeShoot) {
		return ValidationError("product type must be fruit or shoot")
	}
	if in.PricePerUnit <= 0 {
		return ValidationError("price must be positive")
	}
	if in.Quantity < 0 {
		return ValidationError("quantity must not be negative")
	}
	if in.Unit == "" {
		return ValidationError("unit is required")
	}
	if in.ImageURL != nil && strings.HasPrefix(strings.TrimSpace(*in.ImageURL), "data:") {
		return ValidationError("imageUrl must be a URL, not data URI")
	}
	return nil
}

func (s *productService) Create(ctx context.Context, ownerUID string, in ProductInput) (*model.Product, error) {
	farm, err := s.requireFarm(ctx, ownerUID)
	if err != nil {
		return nil, err
	}
	if err := validateProductInput(&in); err != nil {
		return nil, err
	}

	product := &model.Product{
		FarmID:            farm.ID,
		Name:              in.Name,
		Description:       in.Description,
		ProductType:       model.ProductType(in.ProductType),
		PricePerUnit:      in.PricePerUnit,
		AvailableQuantity: in.Quantity,
		Unit:              in.Unit,
		HarvestDate:       in.HarvestDate,
		ExpiryDate:        in.ExpiryDate,
		IsActive:          true,
		ImageURL:          in.ImageURL,
	}
	if err := s.productRepo.Create(ctx, product, in.ImageURLs); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, ownerUID string, productID uint64, in ProductInput) (*model.Product, error) {
	product, err := s.requireOwned(ctx, ownerUID, productID)
	if err != nil {
		return nil, err
	}
	if err := validateProductInput(&in); err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.ProductType = model.ProductType(in.ProductType)
	product.PricePerUnit = in.PricePerUnit
	product.Unit = in.Unit
	product.HarvestDate = in.HarvestDate
	product.ExpiryDate = in.ExpiryDate
	if in.ImageURL != nil {
		product.ImageURL = in.ImageURL
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, ownerUID string, productID uint64) error {
	if _, err := s.requireOwned(ctx, ownerUID, productID); err != nil {
		return err
	}
	openOrders, err := s.orderRepo.CountOpenByProduct(ctx, productID)
	if err != nil {
		return err
	}
	pending, err := s.reservationRepo.CountPendingByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if openOrders > 0 || pending > 0 {
		return ErrHasActiveOrders
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *productService) ToggleActive(ctx context.Context, ownerUID string, productID uint64) (bool, error) {
	product, err := s.requireOwned(ctx, ownerUID, productID)
	if err != nil {
		return false, err
	}
	next := !product.IsActive
	if err := s.productRepo.SetActive(ctx, productID, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *productService) Get(ctx context.Context, id uint64) (*ProductDetail, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	images, err := s.productRepo.Images(ctx, id)
	if err != nil {
		return nil, err
	}
	farm, _ := s.farmRepo.FindByID(ctx, product.FarmID)
	return &ProductDetail{Product: *product, Images: images, Farm: farm}, nil
}

func (s *productService) ListMarket(ctx context.Context, limit, offset int, productType, search string) ([]model.Product, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.productRepo.ListMarket(ctx, limit, offset, productType, search)
}

func (s *productService) ListOwn(ctx context.Context, ownerUID string) ([]model.Product, error) {
	farm, err := s.requireFarm(ctx, ownerUID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.ListByFarm(ctx, farm.ID)
}

func (s *productService) requireFarm(ctx context.Context, ownerUID string) (*model.FarmProfile, error) {
	farm, err := s.farmRepo.FindByUserUID(ctx, ownerUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return farm, nil
}

func (s *productService) requireOwned(ctx context.Context, ownerUID string, productID uint64) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	farm, err := s.requireFarm(ctx, ownerUID)
	if err != nil {
		return nil, err
	}
	if farm.ID != product.FarmID {
		return nil, ErrForbidden
	}
	return product, nil
}
