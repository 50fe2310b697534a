package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"saturnalia/internal/domain/entity"
	"saturnalia/pkg/errors"
)

func TestGetOrderEnforcesOwnership(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.orders = append(orderRepo.orders, &entity.Order{ID: "order-1", UserID: "user-1"})
	uc := NewOrderUseCase(orderRepo)

	order, err := uc.GetOrder(context.Background(), "user-1", "order-1")
	assert.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)

	// Another user's order reads as absent, not as forbidden.
	_, err = uc.GetOrder(context.Background(), "user-2", "order-1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListUserOrdersUnauthenticated(t *testing.T) {
	uc := NewOrderUseCase(newFakeOrderRepo())

	_, _, err := uc.ListUserOrders(context.Background(), "", 20, 0)

	assert.True(t, errors.Is(err, "UNAUTHENTICATED"))
}

func TestUpdateOrderStatusValidatesStatus(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.orders = append(orderRepo.orders, &entity.Order{ID: "order-1", UserID: "user-1", Status: entity.OrderStatusPending})
	uc := NewOrderUseCase(orderRepo)

	err := uc.UpdateOrderStatus(context.Background(), "order-1", "shipped")
	assert.NoError(t, err)
	assert.Equal(t, "shipped", orderRepo.statusUpdates["order-1"])

	err = uc.UpdateOrderStatus(context.Background(), "order-1", "teleported")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
