package repository

import (
	"context"

	"saturnalia/internal/domain/entity"
)

type CartRepository interface {
	Get(ctx context.Context, userID, productID string) (*entity.CartItem, error)
	Set(ctx context.Context, userID string, item *entity.CartItem) error
	IncrementQuantity(ctx context.Context, userID, productID string, delta int) error
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error
	// Delete is idempotent; deleting a missing item is not an error.
	Delete(ctx context.Context, userID, productID string) error
	// Clear deletes every item in the user's cart. Partial failure leaves the
	// surviving items in place; the first error is returned.
	Clear(ctx context.Context, userID string) error
	List(ctx context.Context, userID string) ([]*entity.CartItem, error)

	// Watch opens a live subscription on users/{uid}/cart. Each callback
	// receives the complete current cart.
	Watch(ctx context.Context, userID string, onSnapshot func([]*entity.CartItem)) CancelFunc
}
