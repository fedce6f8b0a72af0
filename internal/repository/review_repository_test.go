package repository

import (
	"context"
	"math"
	"testing"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func deliveredOrder(t *testing.T, db *gorm.DB, farmID uint64, buyerUID, number string) *model.Order {
	t.Helper()
	products := NewProductRepository(db)
	reservations := NewReservationRepository(db, products)
	orders := NewOrderRepository(db, products)

	p := seedProduct(t, db, farmID, 10)
	res := seedReservation(t, db, reservations, p, buyerUID, 1)
	order, err := orders.CreateFromReservation(context.Background(), res, number)
	require.NoError(t, err)
	_, err = orders.MarkShipped(context.Background(), order.ID, "Kerry Express", "KEX1")
	require.NoError(t, err)
	_, err = orders.MarkDelivered(context.Background(), order.ID)
	require.NoError(t, err)
	return order
}

func TestReviewRepository_CreateForDeliveredOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	farm := seedFarm(t, db, "farm-uid")
	order := deliveredOrder(t, db, farm.ID, "buyer-uid", "BNM-20260828-CCCC0001")

	review := &model.Review{
		OrderID:  order.ID,
		FarmID:   farm.ID,
		BuyerUID: "buyer-uid",
		Rating:   5,
		Comment:  "Sweet and fresh",
	}
	require.NoError(t, repo.CreateForDeliveredOrder(context.Background(), review))

	var got model.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, model.OrderStatusReviewed, got.Status)

	var f model.FarmProfile
	require.NoError(t, db.First(&f, farm.ID).Error)
	assert.Equal(t, 5.0, f.Rating)
	assert.Equal(t, int64(1), f.TotalReviews)
}

func TestReviewRepository_SecondReviewRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	farm := seedFarm(t, db, "farm-uid")
	order := deliveredOrder(t, db, farm.ID, "buyer-uid", "BNM-20260828-CCCC0002")

	first := &model.Review{OrderID: order.ID, FarmID: farm.ID, BuyerUID: "buyer-uid", Rating: 4}
	require.NoError(t, repo.CreateForDeliveredOrder(context.Background(), first))

	second := &model.Review{OrderID: order.ID, FarmID: farm.ID, BuyerUID: "buyer-uid", Rating: 1}
	err := repo.CreateForDeliveredOrder(context.Background(), second)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the losing attempt must not touch the aggregate
	var f model.FarmProfile
	require.NoError(t, db.First(&f, farm.ID).Error)
	assert.Equal(t, 4.0, f.Rating)
	assert.Equal(t, int64(1), f.TotalReviews)
}

func TestReviewRepository_AggregateRunningMean(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	farm := seedFarm(t, db, "farm-uid")

	ratings := []int{4, 4, 5}
	numbers := []string{"BNM-20260828-DDDD0001", "BNM-20260828-DDDD0002", "BNM-20260828-DDDD0003"}
	for i, r := range ratings {
		order := deliveredOrder(t, db, farm.ID, "buyer-uid", numbers[i])
		review := &model.Review{OrderID: order.ID, FarmID: farm.ID, BuyerUID: "buyer-uid", Rating: r}
		require.NoError(t, repo.CreateForDeliveredOrder(context.Background(), review))
	}

	var f model.FarmProfile
	require.NoError(t, db.First(&f, farm.ID).Error)
	assert.Equal(t, int64(3), f.TotalReviews)
	assert.Less(t, math.Abs(f.Rating-13.0/3.0), 1e-9)
}

func TestReviewRepository_FindByOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	farm := seedFarm(t, db, "farm-uid")
	order := deliveredOrder(t, db, farm.ID, "buyer-uid", "BNM-20260828-EEEE0001")

	got, err := repo.FindByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	review := &model.Review{OrderID: order.ID, FarmID: farm.ID, BuyerUID: "buyer-uid", Rating: 3}
	require.NoError(t, repo.CreateForDeliveredOrder(context.Background(), review))

	got, err = repo.FindByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Rating)
}
