package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/repository"
	"gorm.io/gorm"
)

type ReserveInput struct {
	ProductID       uint64
	Quantity        int64
	Note            string
	UseSavedProfile bool
	ReceiverName    string
	ReceiverPhone   string
	DeliveryAddress string
}

type ReservationService interface {
	Reserve(ctx context.Context, buyerUID string, in ReserveInput) (*model.Reservation, error)
	Confirm(ctx context.Context, reservationID uint64, callerUID string) (*model.Order, error)
	Cancel(ctx context.Context, reservationID uint64, callerUID, reason string) (*model.Reservation, error)
	ListByBuyer(ctx context.Context, buyerUID string) ([]ReservationWithProduct, error)
	ListPendingForFarm(ctx context.Context, callerUID string) ([]ReservationWithProduct, error)
}

type ReservationWithProduct struct {
	Reservation model.Reservation
	Product     *model.Product
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	orderRepo       repository.OrderRepository
	productRepo     repository.ProductRepository
	farmRepo        repository.FarmRepository
	profileRepo     repository.ProfileRepository
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	farmRepo repository.FarmRepository,
	profileRepo repository.ProfileRepository,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		farmRepo:        farmRepo,
		profileRepo:     profileRepo,
	}
}

func (s *reservationService) Reserve(ctx context.Context, buyerUID string, in ReserveInput) (*model.Reservation, error) {
	if buyerUID == "" {
		return nil, ValidationError("buyer is required")
	}
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrNotFound
	}
	if farm, err := s.farmRepo.FindByUserUID(ctx, buyerUID); err == nil && farm.ID == product.FarmID {
		return nil, ValidationError("cannot reserve your own product")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The delivery snapshot is captured now and never rewritten; later
	// profile edits must not alter an in-flight reservation.
	name := strings.TrimSpace(in.ReceiverName)
	phone := strings.TrimSpace(in.ReceiverPhone)
	address := strings.TrimSpace(in.DeliveryAddress)
	if in.UseSavedProfile {
		profile, err := s.profileRepo.Get(ctx, buyerUID)
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(profile.DisplayName)
		phone = strings.TrimSpace(profile.Phone)
		address = strings.TrimSpace(profile.DeliveryAddress)
	}
	if name == "" {
		return nil, ValidationError("receiver name is required")
	}
	if phone == "" {
		return nil, ValidationError("receiver phone is required")
	}
	if address == "" {
		return nil, ValidationError("delivery address is required")
	}

	res := &model.Reservation{
		BuyerUID:        buyerUID,
		ProductID:       product.ID,
		FarmID:          product.FarmID,
		Quantity:        in.Quantity,
		TotalPrice:      product.PricePerUnit * float64(in.Quantity),
		ReceiverName:    name,
		ReceiverPhone:   phone,
		DeliveryAddress: address,
		Note:            strings.TrimSpace(in.Note),
		Status:          model.ReservationStatusPending,
	}
	if err := s.reservationRepo.CreateWithStockDecrement(ctx, res); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInsufficientStock
		}
		return nil, err
	}
	return res, nil
}

func (s *reservationService) Confirm(ctx context.Context, reservationID uint64, callerUID string) (*model.Order, error) {
	res, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.requireFarmOwner(ctx, callerUID, res.FarmID); err != nil {
		return nil, err
	}
	if res.Status != model.ReservationStatusPending {
		return nil, ErrAlreadyProcessed
	}

	order, err := s.orderRepo.CreateFromReservation(ctx, res, newOrderNumber())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlreadyProcessed
		}
		return nil, err
	}
	return order, nil
}

func (s *reservationService) Cancel(ctx context.Context, reservationID uint64, callerUID, reason string) (*model.Reservation, error) {
	res, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.BuyerUID != callerUID {
		if err := s.requireFarmOwner(ctx, callerUID, res.FarmID); err != nil {
			return nil, err
		}
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "unspecified"
	}
	rows, err := s.reservationRepo.CancelPending(ctx, reservationID, reason)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAlreadyProcessed
	}
	return s.reservationRepo.FindByID(ctx, reservationID)
}

func (s *reservationService) ListByBuyer(ctx context.Context, buyerUID string) ([]ReservationWithProduct, error) {
	if buyerUID == "" {
		return nil, ValidationError("buyer is required")
	}
	list, err := s.reservationRepo.ListByBuyer(ctx, buyerUID)
	if err != nil {
		return nil, err
	}
	return s.withProducts(ctx, list), nil
}

func (s *reservationService) ListPendingForFarm(ctx context.Context, callerUID string) ([]ReservationWithProduct, error) {
	farm, err := s.farmRepo.FindByUserUID(ctx, callerUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	list, err := s.reservationRepo.ListPendingByFarm(ctx, farm.ID)
	if err != nil {
		return nil, err
	}
	return s.withProducts(ctx, list), nil
}

func (s *reservationService) withProducts(ctx context.Context, list []model.Reservation) []ReservationWithProduct {
	resp := make([]ReservationWithProduct, 0, len(list))
	for _, res := range list {
		product, _ := s.productRepo.FindByID(ctx, res.ProductID)
		resp = append(resp, ReservationWithProduct{Reservation: res, Product: product})
	}
	return resp
}

func (s *reservationService) requireFarmOwner(ctx context.Context, callerUID string, farmID uint64) error {
	farm, err := s.farmRepo.FindByUserUID(ctx, callerUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	if farm.ID != farmID {
		return ErrForbidden
	}
	return nil
}

func newOrderNumber() string {
	return fmt.Sprintf("BNM-%s-%s", time.Now().Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}
