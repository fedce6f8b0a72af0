package service

import (
	"context"
	"errors"
	"strings"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/repository"
	"gorm.io/gorm"
)

type ReviewService interface {
	Submit(ctx context.Context, orderID uint64, buyerUID string, rating int, comment string) (*model.Review, error)
	ListByFarm(ctx context.Context, farmID uint64) ([]model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, orderRepo repository.OrderRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, orderRepo: orderRepo}
}

func (s *reviewService) Submit(ctx context.Context, orderID uint64, buyerUID string, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.BuyerUID != buyerUID {
		return nil, ErrForbidden
	}
	switch order.Status {
	case model.OrderStatusDelivered:
		// reviewable
	case model.OrderStatusReviewed:
		return nil, ErrAlreadyReviewed
	default:
		return nil, ErrInvalidState
	}

	review := &model.Review{
		OrderID:  orderID,
		FarmID:   order.FarmID,
		BuyerUID: buyerUID,
		Rating:   rating,
		Comment:  strings.TrimSpace(comment),
	}
	if err := s.reviewRepo.CreateForDeliveredOrder(ctx, review); err != nil {
		// The guarded flip failed: a concurrent review got there first.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByFarm(ctx context.Context, farmID uint64) ([]model.Review, error) {
	return s.reviewRepo.ListByFarm(ctx, farmID)
}
