package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/repository"
)

type ProfileService interface {
	Get(ctx context.Context, uid string) (*model.UserProfile, []model.Role, error)
	Update(ctx context.Context, uid, displayName, phone, deliveryAddress string) (*model.UserProfile, error)
	// Heartbeat records last_seen best-effort. It never returns an error;
	// a failed write is logged and dropped so it cannot block a request.
	Heartbeat(ctx context.Context, uid string)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context, uid string) (*model.UserProfile, []model.Role, error) {
	if uid == "" {
		return nil, nil, ValidationError("uid is required")
	}
	profile, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, nil, err
	}
	roles, err := s.repo.Roles(ctx, uid)
	if err != nil {
		return nil, nil, err
	}
	if len(roles) == 0 {
		roles = []model.Role{model.RoleUser}
	}
	return profile, roles, nil
}

func (s *profileService) Update(ctx context.Context, uid, displayName, phone, deliveryAddress string) (*model.UserProfile, error) {
	profile, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	profile.DisplayName = strings.TrimSpace(displayName)
	profile.Phone = strings.TrimSpace(phone)
	profile.DeliveryAddress = strings.TrimSpace(deliveryAddress)
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Heartbeat(ctx context.Context, uid string) {
	if uid == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.repo.Touch(ctx, uid, time.Now()); err != nil {
		log.Printf("heartbeat uid=%s failed: %v", uid, err)
	}
}
