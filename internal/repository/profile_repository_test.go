package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_GetCreatesOnFirstUse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	p, err := repo.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", p.UID)
	assert.Nil(t, p.LastSeen)

	p.DisplayName = "Somchai"
	require.NoError(t, repo.Update(ctx, p))

	again, err := repo.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Somchai", again.DisplayName)
}

func TestProfileRepository_TouchUpsertsLastSeen(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	// works with no profile row yet
	first := time.Now().Add(-time.Minute).Truncate(time.Second)
	require.NoError(t, repo.Touch(ctx, "uid-1", first))

	p, err := repo.Get(ctx, "uid-1")
	require.NoError(t, err)
	require.NotNil(t, p.LastSeen)

	// touch must not wipe profile fields
	p.DisplayName = "Somchai"
	require.NoError(t, repo.Update(ctx, p))

	second := time.Now().Truncate(time.Second)
	require.NoError(t, repo.Touch(ctx, "uid-1", second))

	p, err = repo.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Somchai", p.DisplayName)
	require.NotNil(t, p.LastSeen)
	assert.True(t, p.LastSeen.After(first))
}

func TestProfileRepository_Roles(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	roles, err := repo.Roles(ctx, "uid-1")
	require.NoError(t, err)
	assert.Empty(t, roles)

	require.NoError(t, repo.AddRole(ctx, "uid-1", model.RoleUser))
	require.NoError(t, repo.AddRole(ctx, "uid-1", model.RoleFarm))
	// duplicate grant is a no-op
	require.NoError(t, repo.AddRole(ctx, "uid-1", model.RoleFarm))

	roles, err = repo.Roles(ctx, "uid-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Role{model.RoleUser, model.RoleFarm}, roles)
}

func TestProfileRepository_UpdateKeepsLastSeen(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	p, err := repo.Get(ctx, "uid-1")
	require.NoError(t, err)

	// heartbeat lands after the profile struct was read
	seen := time.Now().Truncate(time.Second)
	require.NoError(t, repo.Touch(ctx, "uid-1", seen))

	p.DisplayName = "Somchai"
	require.NoError(t, repo.Update(ctx, p))

	again, err := repo.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Somchai", again.DisplayName)
	require.NotNil(t, again.LastSeen)
}

func TestFarmRepository_UpdateKeepsAggregates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFarmRepository(db)
	ctx := context.Background()
	farm := seedFarm(t, db, "farm-uid")

	// struct read before a review and a sale land
	stale, err := repo.FindByID(ctx, farm.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.FarmProfile{}).
		Where("id = ?", farm.ID).
		Updates(map[string]interface{}{"rating": 5.0, "total_reviews": 1}).Error)
	require.NoError(t, repo.AddSales(ctx, farm.ID, 70))

	stale.FarmName = "Suan Kluai Renamed"
	require.NoError(t, repo.Update(ctx, stale))

	got, err := repo.FindByID(ctx, farm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Suan Kluai Renamed", got.FarmName)
	assert.Equal(t, 5.0, got.Rating)
	assert.Equal(t, int64(1), got.TotalReviews)
	assert.Equal(t, 70.0, got.TotalSales)
}

func TestFarmRepository_AddSales(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFarmRepository(db)
	ctx := context.Background()
	farm := seedFarm(t, db, "farm-uid")

	require.NoError(t, repo.AddSales(ctx, farm.ID, 70))
	require.NoError(t, repo.AddSales(ctx, farm.ID, 35.5))

	got, err := repo.FindByID(ctx, farm.ID)
	require.NoError(t, err)
	assert.Equal(t, 105.5, got.TotalSales)
}
