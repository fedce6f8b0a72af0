package service_test

import (
	"context"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"gorm.io/gorm"
)

// Mocks with func fields, one per repository. Methods a test does not
// configure return zero values.

type mockProductRepository struct {
	createFunc        func(ctx context.Context, product *model.Product, imageURLs []string) error
	findByIDFunc      func(ctx context.Context, id uint64) (*model.Product, error)
	listMarketFunc    func(ctx context.Context, limit, offset int, productType, search string) ([]model.Product, int64, error)
	listByFarmFunc    func(ctx context.Context, farmID uint64) ([]model.Product, error)
	countActiveFunc   func(ctx context.Context, farmID uint64) (int64, error)
	updateFunc        func(ctx context.Context, product *model.Product) error
	setActiveFunc     func(ctx context.Context, id uint64, active bool) error
	deleteFunc        func(ctx context.Context, id uint64) error
	imagesFunc        func(ctx context.Context, productID uint64) ([]model.ProductImage, error)
	reserveStockFunc  func(tx *gorm.DB, productID uint64, quantity int64) (int64, error)
	releaseStockFunc  func(tx *gorm.DB, productID uint64, quantity int64) error
	listActiveInStock func(ctx context.Context, farmID uint64) ([]model.Product, error)
}

func (m *mockProductRepository) Create(ctx context.Context, product *model.Product, imageURLs []string) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, product, imageURLs)
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uint64) (*model.Product, error) {
	if m.findByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByIDFunc(ctx, id)
}

func (m *mockProductRepository) ListMarket(ctx context.Context, limit, offset int, productType, search string) ([]model.Product, int64, error) {
	if m.listMarketFunc == nil {
		return nil, 0, nil
	}
	return m.listMarketFunc(ctx, limit, offset, productType, search)
}

func (m *mockProductRepository) ListByFarm(ctx context.Context, farmID uint64) ([]model.Product, error) {
	if m.listByFarmFunc == nil {
		return nil, nil
	}
	return m.listByFarmFunc(ctx, farmID)
}

func (m *mockProductRepository) ListActiveInStockByFarm(ctx context.Context, farmID uint64) ([]model.Product, error) {
	if m.listActiveInStock == nil {
		return nil, nil
	}
	return m.listActiveInStock(ctx, farmID)
}

func (m *mockProductRepository) CountActiveByFarm(ctx context.Context, farmID uint64) (int64, error) {
	if m.countActiveFunc == nil {
		return 0, nil
	}
	return m.countActiveFunc(ctx, farmID)
}

func (m *mockProductRepository) Update(ctx context.Context, product *model.Product) error {
	if m.updateFunc == nil {
		return nil
	}
	return m.updateFunc(ctx, product)
}

func (m *mockProductRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	if m.setActiveFunc == nil {
		return nil
	}
	return m.setActiveFunc(ctx, id, active)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uint64) error {
	if m.deleteFunc == nil {
		return nil
	}
	return m.deleteFunc(ctx, id)
}

func (m *mockProductRepository) Images(ctx context.Context, productID uint64) ([]model.ProductImage, error) {
	if m.imagesFunc == nil {
		return nil, nil
	}
	return m.imagesFunc(ctx, productID)
}

func (m *mockProductRepository) ReserveStock(tx *gorm.DB, productID uint64, quantity int64) (int64, error) {
	if m.reserveStockFunc == nil {
		return 0, nil
	}
	return m.reserveStockFunc(tx, productID, quantity)
}

func (m *mockProductRepository) ReleaseStock(tx *gorm.DB, productID uint64, quantity int64) error {
	if m.releaseStockFunc == nil {
		return nil
	}
	return m.releaseStockFunc(tx, productID, quantity)
}

func (m *mockProductRepository) SetDB(db *gorm.DB) {}

type mockReservationRepository struct {
	createFunc                func(ctx context.Context, res *model.Reservation) error
	findByIDFunc              func(ctx context.Context, id uint64) (*model.Reservation, error)
	listByBuyerFunc           func(ctx context.Context, buyerUID string) ([]model.Reservation, error)
	listPendingByFarmFunc     func(ctx context.Context, farmID uint64) ([]model.Reservation, error)
	countPendingByFarmFunc    func(ctx context.Context, farmID uint64) (int64, error)
	countPendingByProductFunc func(ctx context.Context, productID uint64) (int64, error)
	cancelPendingFunc         func(ctx context.Context, id uint64, reason string) (int64, error)
}

func (m *mockReservationRepository) CreateWithStockDecrement(ctx context.Context, res *model.Reservation) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, res)
}

func (m *mockReservationRepository) FindByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	if m.findByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByIDFunc(ctx, id)
}

func (m *mockReservationRepository) ListByBuyer(ctx context.Context, buyerUID string) ([]model.Reservation, error) {
	if m.listByBuyerFunc == nil {
		return nil, nil
	}
	return m.listByBuyerFunc(ctx, buyerUID)
}

func (m *mockReservationRepository) ListPendingByFarm(ctx context.Context, farmID uint64) ([]model.Reservation, error) {
	if m.listPendingByFarmFunc == nil {
		return nil, nil
	}
	return m.listPendingByFarmFunc(ctx, farmID)
}

func (m *mockReservationRepository) CountPendingByFarm(ctx context.Context, farmID uint64) (int64, error) {
	if m.countPendingByFarmFunc == nil {
		return 0, nil
	}
	return m.countPendingByFarmFunc(ctx, farmID)
}

func (m *mockReservationRepository) CountPendingByProduct(ctx context.Context, productID uint64) (int64, error) {
	if m.countPendingByProductFunc == nil {
		return 0, nil
	}
	return m.countPendingByProductFunc(ctx, productID)
}

func (m *mockReservationRepository) CancelPending(ctx context.Context, id uint64, reason string) (int64, error) {
	if m.cancelPendingFunc == nil {
		return 0, nil
	}
	return m.cancelPendingFunc(ctx, id, reason)
}

func (m *mockReservationRepository) SetDB(db *gorm.DB) {}

type mockOrderRepository struct {
	createFromReservationFunc func(ctx context.Context, res *model.Reservation, orderNumber string) (*model.Order, error)
	findByIDFunc              func(ctx context.Context, id uint64) (*model.Order, error)
	listByBuyerFunc           func(ctx context.Context, buyerUID string) ([]model.Order, error)
	listByFarmFunc            func(ctx context.Context, farmID uint64) ([]model.Order, error)
	countByFarmFunc           func(ctx context.Context, farmID uint64) (int64, error)
	countOpenByProductFunc    func(ctx context.Context, productID uint64) (int64, error)
	sumDeliveredSalesFunc     func(ctx context.Context, farmID uint64) (float64, error)
	markShippedFunc           func(ctx context.Context, id uint64, carrier, trackingNumber string) (int64, error)
	markDeliveredFunc         func(ctx context.Context, id uint64) (int64, error)
	expireConfirmedFunc       func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockOrderRepository) CreateFromReservation(ctx context.Context, res *model.Reservation, orderNumber string) (*model.Order, error) {
	if m.createFromReservationFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.createFromReservationFunc(ctx, res, orderNumber)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	if m.findByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByIDFunc(ctx, id)
}

func (m *mockOrderRepository) ListByBuyer(ctx context.Context, buyerUID string) ([]model.Order, error) {
	if m.listByBuyerFunc == nil {
		return nil, nil
	}
	return m.listByBuyerFunc(ctx, buyerUID)
}

func (m *mockOrderRepository) ListByFarm(ctx context.Context, farmID uint64) ([]model.Order, error) {
	if m.listByFarmFunc == nil {
		return nil, nil
	}
	return m.listByFarmFunc(ctx, farmID)
}

func (m *mockOrderRepository) CountByFarm(ctx context.Context, farmID uint64) (int64, error) {
	if m.countByFarmFunc == nil {
		return 0, nil
	}
	return m.countByFarmFunc(ctx, farmID)
}

func (m *mockOrderRepository) CountOpenByProduct(ctx context.Context, productID uint64) (int64, error) {
	if m.countOpenByProductFunc == nil {
		return 0, nil
	}
	return m.countOpenByProductFunc(ctx, productID)
}

func (m *mockOrderRepository) SumDeliveredSalesByFarm(ctx context.Context, farmID uint64) (float64, error) {
	if m.sumDeliveredSalesFunc == nil {
		return 0, nil
	}
	return m.sumDeliveredSalesFunc(ctx, farmID)
}

func (m *mockOrderRepository) MarkShipped(ctx context.Context, id uint64, carrier, trackingNumber string) (int64, error) {
	if m.markShippedFunc == nil {
		return 0, nil
	}
	return m.markShippedFunc(ctx, id, carrier, trackingNumber)
}

func (m *mockOrderRepository) MarkDelivered(ctx context.Context, id uint64) (int64, error) {
	if m.markDeliveredFunc == nil {
		return 0, nil
	}
	return m.markDeliveredFunc(ctx, id)
}

func (m *mockOrderRepository) ExpireConfirmedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.expireConfirmedFunc == nil {
		return 0, nil
	}
	return m.expireConfirmedFunc(ctx, cutoff)
}

func (m *mockOrderRepository) SetDB(db *gorm.DB) {}

type mockReviewRepository struct {
	createFunc      func(ctx context.Context, review *model.Review) error
	findByOrderFunc func(ctx context.Context, orderID uint64) (*model.Review, error)
	listByFarmFunc  func(ctx context.Context, farmID uint64) ([]model.Review, error)
}

func (m *mockReviewRepository) CreateForDeliveredOrder(ctx context.Context, review *model.Review) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, review)
}

func (m *mockReviewRepository) FindByOrder(ctx context.Context, orderID uint64) (*model.Review, error) {
	if m.findByOrderFunc == nil {
		return nil, nil
	}
	return m.findByOrderFunc(ctx, orderID)
}

func (m *mockReviewRepository) ListByFarm(ctx context.Context, farmID uint64) ([]model.Review, error) {
	if m.listByFarmFunc == nil {
		return nil, nil
	}
	return m.listByFarmFunc(ctx, farmID)
}

func (m *mockReviewRepository) SetDB(db *gorm.DB) {}

type mockFarmRepository struct {
	createFunc        func(ctx context.Context, farm *model.FarmProfile) error
	findByIDFunc      func(ctx context.Context, id uint64) (*model.FarmProfile, error)
	findByUserUIDFunc func(ctx context.Context, uid string) (*model.FarmProfile, error)
	updateFunc        func(ctx context.Context, farm *model.FarmProfile) error
	addSalesFunc      func(ctx context.Context, farmID uint64, amount float64) error
}

func (m *mockFarmRepository) Create(ctx context.Context, farm *model.FarmProfile) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, farm)
}

func (m *mockFarmRepository) FindByID(ctx context.Context, id uint64) (*model.FarmProfile, error) {
	if m.findByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByIDFunc(ctx, id)
}

func (m *mockFarmRepository) FindByUserUID(ctx context.Context, uid string) (*model.FarmProfile, error) {
	if m.findByUserUIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByUserUIDFunc(ctx, uid)
}

func (m *mockFarmRepository) Update(ctx context.Context, farm *model.FarmProfile) error {
	if m.updateFunc == nil {
		return nil
	}
	return m.updateFunc(ctx, farm)
}

func (m *mockFarmRepository) AddSales(ctx context.Context, farmID uint64, amount float64) error {
	if m.addSalesFunc == nil {
		return nil
	}
	return m.addSalesFunc(ctx, farmID, amount)
}

func (m *mockFarmRepository) SetDB(db *gorm.DB) {}

type mockProfileRepository struct {
	getFunc     func(ctx context.Context, uid string) (*model.UserProfile, error)
	updateFunc  func(ctx context.Context, profile *model.UserProfile) error
	touchFunc   func(ctx context.Context, uid string, at time.Time) error
	rolesFunc   func(ctx context.Context, uid string) ([]model.Role, error)
	addRoleFunc func(ctx context.Context, uid string, role model.Role) error
}

func (m *mockProfileRepository) Get(ctx context.Context, uid string) (*model.UserProfile, error) {
	if m.getFunc == nil {
		return &model.UserProfile{UID: uid}, nil
	}
	return m.getFunc(ctx, uid)
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *model.UserProfile) error {
	if m.updateFunc == nil {
		return nil
	}
	return m.updateFunc(ctx, profile)
}

func (m *mockProfileRepository) Touch(ctx context.Context, uid string, at time.Time) error {
	if m.touchFunc == nil {
		return nil
	}
	return m.touchFunc(ctx, uid, at)
}

func (m *mockProfileRepository) Roles(ctx context.Context, uid string) ([]model.Role, error) {
	if m.rolesFunc == nil {
		return nil, nil
	}
	return m.rolesFunc(ctx, uid)
}

func (m *mockProfileRepository) AddRole(ctx context.Context, uid string, role model.Role) error {
	if m.addRoleFunc == nil {
		return nil
	}
	return m.addRoleFunc(ctx, uid, role)
}

func (m *mockProfileRepository) SetDB(db *gorm.DB) {}
