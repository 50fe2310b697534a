package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	"saturnalia/pkg/errors"
)

type fakeOrderRepo struct {
	orders    []*entity.Order
	createErr error

	statusUpdates map[string]string
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{statusUpdates: make(map[string]string)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = fmt.Sprintf("order-%d", len(f.orders)+1)
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	for _, order := range f.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, errors.NotFound("Order", nil)
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int64, error) {
	var orders []*entity.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, int64(len(orders)), nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	return f.orders, int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) ListByStatus(ctx context.Context, status string, limit int) ([]*entity.Order, error) {
	var orders []*entity.Order
	for _, order := range f.orders {
		if order.Status == status {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeOrderRepo) MarkProcessing(ctx context.Context, id string) error {
	f.statusUpdates[id] = entity.OrderStatusProcessing
	return nil
}

func (f *fakeOrderRepo) WatchByUser(ctx context.Context, userID string, onSnapshot func([]*entity.Order)) repository.CancelFunc {
	return func() {}
}

func TestCheckoutSnapshotsCartIntoOrder(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartRepo.items["p1"] = &entity.CartItem{ID: "p1", ProductID: "p1", Name: "Candle Set", Price: 19.99, Quantity: 2}
	cartRepo.items["p2"] = &entity.CartItem{ID: "p2", ProductID: "p2", Name: "Wreath", Price: 34.50, Quantity: 1}
	orderRepo := newFakeOrderRepo()
	uc := NewCheckoutUseCase(cartRepo, orderRepo)

	result, err := uc.Checkout(context.Background(), &entity.Identity{UID: "user-1", Email: "sam@inst.edu"}, CheckoutInput{
		Shipping:   entity.ShippingDetails{FirstName: "Sam", LastName: "Iyer", Email: "sam@inst.edu", Address: "1 Main St", City: "Pune", ZipCode: "411001", Country: "IN"},
		CardNumber: "4111 1111 1111 1234",
		HolderName: "Sam Iyer",
	})

	assert.NoError(t, err)
	assert.True(t, result.CartCleared)
	assert.Equal(t, entity.OrderStatusPending, result.Order.Status)
	assert.Equal(t, "user-1", result.Order.UserID)
	assert.Len(t, result.Order.Items, 2)
	assert.InDelta(t, 2*19.99+34.50, result.Order.Total, 0.001)
	assert.Empty(t, cartRepo.items)
}

func TestCheckoutRedactsPaymentDetails(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartRepo.items["p1"] = &entity.CartItem{ID: "p1", ProductID: "p1", Price: 10, Quantity: 1}
	uc := NewCheckoutUseCase(cartRepo, newFakeOrderRepo())

	result, err := uc.Checkout(context.Background(), &entity.Identity{UID: "user-1"}, CheckoutInput{
		CardNumber: "4111-1111-1111-9876",
		HolderName: "Sam Iyer",
	})

	assert.NoError(t, err)
	assert.Equal(t, "9876", result.Order.Payment.CardLast4)
	assert.Equal(t, "Sam Iyer", result.Order.Payment.HolderName)
}

func TestCheckoutEmptyCart(t *testing.T) {
	uc := NewCheckoutUseCase(newFakeCartRepo(), newFakeOrderRepo())

	_, err := uc.Checkout(context.Background(), &entity.Identity{UID: "user-1"}, CheckoutInput{})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCheckoutUnauthenticated(t *testing.T) {
	uc := NewCheckoutUseCase(newFakeCartRepo(), newFakeOrderRepo())

	_, err := uc.Checkout(context.Background(), nil, CheckoutInput{})

	assert.True(t, errors.Is(err, "UNAUTHENTICATED"))
}

func TestCheckoutOrderWriteFailureLeavesCartUntouched(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartRepo.items["p1"] = &entity.CartItem{ID: "p1", ProductID: "p1", Price: 10, Quantity: 1}
	orderRepo := newFakeOrderRepo()
	orderRepo.createErr = errors.Transient("Backend unavailable", nil)
	uc := NewCheckoutUseCase(cartRepo, orderRepo)

	_, err := uc.Checkout(context.Background(), &entity.Identity{UID: "user-1"}, CheckoutInput{})

	assert.Error(t, err)
	assert.Len(t, cartRepo.items, 1)
	assert.Empty(t, orderRepo.orders)
}

func TestCheckoutCartClearFailureStillReturnsOrder(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartRepo.items["p1"] = &entity.CartItem{ID: "p1", ProductID: "p1", Price: 10, Quantity: 1}
	cartRepo.clearErr = errors.Transient("Backend unavailable", nil)
	orderRepo := newFakeOrderRepo()
	uc := NewCheckoutUseCase(cartRepo, orderRepo)

	result, err := uc.Checkout(context.Background(), &entity.Identity{UID: "user-1"}, CheckoutInput{})

	assert.NoError(t, err)
	assert.False(t, result.CartCleared)
	assert.Len(t, orderRepo.orders, 1)
	// The items stay remote until a later clear succeeds.
	assert.Len(t, cartRepo.items, 1)
}

func TestCheckoutCapturesCartBeforeLaterMutations(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartRepo.items["p1"] = &entity.CartItem{ID: "p1", ProductID: "p1", Price: 10, Quantity: 1}
	orderRepo := newFakeOrderRepo()
	uc := NewCheckoutUseCase(cartRepo, orderRepo)

	result, err := uc.Checkout(context.Background(), &entity.Identity{UID: "user-1"}, CheckoutInput{})
	assert.NoError(t, err)

	// Mutating the repo's copy after checkout must not reach the order.
	cartRepo.items["p9"] = &entity.CartItem{ID: "p9", ProductID: "p9", Price: 99, Quantity: 9}

	assert.Len(t, result.Order.Items, 1)
	assert.Equal(t, "p1", result.Order.Items[0].ProductID)
	assert.InDelta(t, 10, result.Order.Total, 0.001)
}
