package repository

import (
	"context"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	Get(ctx context.Context, uid string) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
	// Touch upserts last_seen. It is the heartbeat write path and must
	// stay cheap; callers treat failures as non-fatal.
	Touch(ctx context.Context, uid string, at time.Time) error
	Roles(ctx context.Context, uid string) ([]model.Role, error)
	AddRole(ctx context.Context, uid string, role model.Role) error
	SetDB(db *gorm.DB)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, uid string) (*model.UserProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.UserProfile
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).FirstOrCreate(&p, &model.UserProfile{UID: uid}).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes the editable columns only so a racing Touch cannot have
// its last_seen overwritten by a stale profile struct.
func (r *profileRepository) Update(ctx context.Context, profile *model.UserProfile) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("uid = ?", profile.UID).
		Select("display_name", "phone", "delivery_address").
		Updates(profile).Error
}

func (r *profileRepository) Touch(ctx context.Context, uid string, at time.Time) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_seen": at}),
	}).Create(&model.UserProfile{UID: uid, LastSeen: &at}).Error
}

func (r *profileRepository) Roles(ctx context.Context, uid string) ([]model.Role, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []model.UserRole
	if err := r.db.WithContext(ctx).
		Where("user_uid = ?", uid).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	roles := make([]model.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.Role)
	}
	return roles, nil
}

func (r *profileRepository) AddRole(ctx context.Context, uid string, role model.Role) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserRole{UserUID: uid, Role: role}).Error
}

func (r *profileRepository) SetDB(db *gorm.DB) {
	r.db = db
}
