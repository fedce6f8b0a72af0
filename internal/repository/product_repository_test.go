package repository

import (
	"context"
	"testing"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_ReserveStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	farm := seedFarm(t, db, "farm-uid")
	p := seedProduct(t, db, farm.ID, 10)

	rows, err := repo.ReserveStock(db, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.Equal(t, int64(7), productQuantity(t, db, p.ID))

	// asking for more than remains must not touch the row
	rows, err = repo.ReserveStock(db, p.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.Equal(t, int64(7), productQuantity(t, db, p.ID))

	// draining to exactly zero is allowed
	rows, err = repo.ReserveStock(db, p.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.Equal(t, int64(0), productQuantity(t, db, p.ID))
}

func TestProductRepository_ReserveStockInactive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	farm := seedFarm(t, db, "farm-uid")
	p := seedProduct(t, db, farm.ID, 10)

	require.NoError(t, db.Model(p).Update("is_active", false).Error)

	rows, err := repo.ReserveStock(db, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.Equal(t, int64(10), productQuantity(t, db, p.ID))
}

func TestProductRepository_ReleaseStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	farm := seedFarm(t, db, "farm-uid")
	p := seedProduct(t, db, farm.ID, 10)

	rows, err := repo.ReserveStock(db, p.ID, 4)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	require.NoError(t, repo.ReleaseStock(db, p.ID, 4))
	assert.Equal(t, int64(10), productQuantity(t, db, p.ID))
}

func TestProductRepository_ListMarket(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	farm := seedFarm(t, db, "farm-uid")

	active := seedProduct(t, db, farm.ID, 5)
	soldOut := seedProduct(t, db, farm.ID, 0)
	hidden := seedProduct(t, db, farm.ID, 5)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)
	shoot := seedProduct(t, db, farm.ID, 5)
	require.NoError(t, db.Model(shoot).Updates(map[string]interface{}{
		"product_type": model.ProductTypeShoot,
		"name":         "Nam Wa shoot",
	}).Error)

	list, total, err := repo.ListMarket(ctx, 20, 0, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	ids := make(map[uint64]bool)
	for _, p := range list {
		ids[p.ID] = true
	}
	assert.True(t, ids[active.ID])
	assert.True(t, ids[shoot.ID])
	assert.False(t, ids[soldOut.ID])
	assert.False(t, ids[hidden.ID])

	list, total, err = repo.ListMarket(ctx, 20, 0, string(model.ProductTypeShoot), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, shoot.ID, list[0].ID)

	_, total, err = repo.ListMarket(ctx, 20, 0, "", "shoot")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestProductRepository_DeleteRemovesImages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	farm := seedFarm(t, db, "farm-uid")

	p := &model.Product{
		FarmID:            farm.ID,
		Name:              "Kluai Khai",
		ProductType:       model.ProductTypeFruit,
		PricePerUnit:      60,
		AvailableQuantity: 3,
		Unit:              "hand",
		IsActive:          true,
	}
	require.NoError(t, repo.Create(ctx, p, []string{"https://img.example/a.jpg", "https://img.example/b.jpg"}))

	images, err := repo.Images(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)

	require.NoError(t, repo.Delete(ctx, p.ID))

	images, err = repo.Images(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestProductRepository_UpdateKeepsReservedStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	farm := seedFarm(t, db, "farm-uid")
	p := seedProduct(t, db, farm.ID, 10)

	// struct read before a reservation lands still carries quantity 10
	stale, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10), stale.AvailableQuantity)

	rows, err := repo.ReserveStock(db, p.ID, 3)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	stale.Name = "Kluai Nam Wa organic"
	require.NoError(t, repo.Update(ctx, stale))

	reloaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kluai Nam Wa organic", reloaded.Name)
	assert.Equal(t, int64(7), reloaded.AvailableQuantity)
}

func TestProductRepository_SetActiveKeepsReservedStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	farm := seedFarm(t, db, "farm-uid")
	p := seedProduct(t, db, farm.ID, 10)

	rows, err := repo.ReserveStock(db, p.ID, 3)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	require.NoError(t, repo.SetActive(ctx, p.ID, false))
	require.NoError(t, repo.SetActive(ctx, p.ID, true))

	reloaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsActive)
	assert.Equal(t, int64(7), reloaded.AvailableQuantity)
}

func TestProductRepository_NilDB(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(nil)

	_, err := repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, ErrDBNotReady)
	_, err = repo.ListByFarm(ctx, 1)
	assert.ErrorIs(t, err, ErrDBNotReady)
	_, err = repo.CountActiveByFarm(ctx, 1)
	assert.ErrorIs(t, err, ErrDBNotReady)
	assert.ErrorIs(t, repo.Update(ctx, &model.Product{ID: 1}), ErrDBNotReady)
	assert.ErrorIs(t, repo.SetActive(ctx, 1, false), ErrDBNotReady)
	assert.ErrorIs(t, repo.Delete(ctx, 1), ErrDBNotReady)
	_, err = repo.Images(ctx, 1)
	assert.ErrorIs(t, err, ErrDBNotReady)
}
