package repository

import (
	"context"

	"saturnalia/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	MarkProcessing(ctx context.Context, id string) error

	// WatchByUser opens a live subscription on the user's orders, newest
	// first. Each callback receives the complete current order list.
	WatchByUser(ctx context.Context, userID string, onSnapshot func([]*entity.Order)) CancelFunc
}
