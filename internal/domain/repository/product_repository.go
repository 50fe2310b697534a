package repository

import (
	"context"

	"saturnalia/internal/domain/entity"
)

// CancelFunc releases a live subscription. Implementations must make it safe
// to call more than once.
type CancelFunc func()

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	AdjustInventory(ctx context.Context, id string, delta int) error

	// Watch opens a live subscription on the global product collection.
	// Each callback receives the complete current product list.
	Watch(ctx context.Context, onSnapshot func([]*entity.Product)) CancelFunc
}
