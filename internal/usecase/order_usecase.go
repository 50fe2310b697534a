package usecase

import (
	"context"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	"saturnalia/pkg/errors"
)

type OrderUseCase struct {
	orderRepo repository.OrderRepository
}

func NewOrderUseCase(orderRepo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
	}
}

func (uc *OrderUseCase) ListUserOrders(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int64, error) {
	if userID == "" {
		return nil, 0, errors.Unauthenticated("Sign in to view your orders", nil)
	}

	return uc.orderRepo.ListByUser(ctx, userID, limit, offset)
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to view your orders", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, errors.NotFound("Order", nil)
	}

	return order, nil
}

// ListAllOrders is the admin view: every order, newest first.
func (uc *OrderUseCase) ListAllOrders(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListAll(ctx, limit, offset)
}

// UpdateOrderStatus advances an order through the external fulfilment
// states. Orders are otherwise immutable after creation.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if !entity.ValidOrderStatus(status) {
		return errors.BadRequest("Unknown order status: "+status, nil)
	}

	return uc.orderRepo.UpdateStatus(ctx, orderID, status)
}
