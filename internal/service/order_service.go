package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/repository"
	"gorm.io/gorm"
)

type OrderService interface {
	Ship(ctx context.Context, orderID uint64, callerUID, carrier, trackingNumber string) (*model.Order, error)
	ConfirmDelivery(ctx context.Context, orderID uint64, callerUID string) (*model.Order, error)
	// ExpireStale is invoked by the external sweep (cmd/expire-orders),
	// never from request handling.
	ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error)
	ListByBuyer(ctx context.Context, buyerUID string) ([]OrderWithProduct, error)
	ListForFarm(ctx context.Context, callerUID string) ([]OrderWithProduct, error)
}

type OrderWithProduct struct {
	Order   model.Order
	Product *model.Product
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	farmRepo    repository.FarmRepository
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, farmRepo repository.FarmRepository) OrderService {
	return &orderService{orderRepo: orderRepo, productRepo: productRepo, farmRepo: farmRepo}
}

func (s *orderService) Ship(ctx context.Context, orderID uint64, callerUID, carrier, trackingNumber string) (*model.Order, error) {
	carrier = strings.TrimSpace(carrier)
	trackingNumber = strings.TrimSpace(trackingNumber)
	if carrier == "" {
		return nil, ValidationError("carrier is required")
	}
	if trackingNumber == "" {
		return nil, ValidationError("tracking number is required")
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	farm, err := s.farmRepo.FindByUserUID(ctx, callerUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if farm.ID != order.FarmID {
		return nil, ErrForbidden
	}

	rows, err := s.orderRepo.MarkShipped(ctx, orderID, carrier, trackingNumber)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidState
	}
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderService) ConfirmDelivery(ctx context.Context, orderID uint64, callerUID string) (*model.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerUID != callerUID {
		return nil, ErrForbidden
	}

	rows, err := s.orderRepo.MarkDelivered(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidState
	}
	// total_sales on the farm profile is derived display data; the
	// delivery must not fail because of it.
	if err := s.farmRepo.AddSales(ctx, order.FarmID, order.TotalPrice); err != nil {
		log.Printf("add sales farm=%d order=%d failed: %v", order.FarmID, order.ID, err)
	}
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderService) ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, ValidationError("expiry window must be positive")
	}
	return s.orderRepo.ExpireConfirmedBefore(ctx, time.Now().Add(-olderThan))
}

func (s *orderService) ListByBuyer(ctx context.Context, buyerUID string) ([]OrderWithProduct, error) {
	if buyerUID == "" {
		return nil, ValidationError("buyer is required")
	}
	list, err := s.orderRepo.ListByBuyer(ctx, buyerUID)
	if err != nil {
		return nil, err
	}
	return s.withProducts(ctx, list), nil
}

func (s *orderService) ListForFarm(ctx context.Context, callerUID string) ([]OrderWithProduct, error) {
	farm, err := s.farmRepo.FindByUserUID(ctx, callerUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	list, err := s.orderRepo.ListByFarm(ctx, farm.ID)
	if err != nil {
		return nil, err
	}
	return s.withProducts(ctx, list), nil
}

func (s *orderService) withProducts(ctx context.Context, list []model.Order) []OrderWithProduct {
	resp := make([]OrderWithProduct, 0, len(list))
	for _, o := range list {
		product, _ := s.productRepo.FindByID(ctx, o.ProductID)
		resp = append(resp, OrderWithProduct{Order: o, Product: product})
	}
	return resp
}

func (s *orderService) findOrder(ctx context.Context, orderID uint64) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}
