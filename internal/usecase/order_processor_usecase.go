package usecase

import (
	"context"
	"time"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	"saturnalia/pkg/logger"
	"saturnalia/pkg/metrics"
)

// OrderProcessorUseCase is the in-process stand-in for the serverless order
// triggers: it advances freshly created orders from pending to processing
// and decrements product inventory per line item. It runs independently of
// checkout; its effects become visible through the next order snapshot.
type OrderProcessorUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	interval    time.Duration
}

func NewOrderProcessorUseCase(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, interval time.Duration) *OrderProcessorUseCase {
	return &OrderProcessorUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		interval:    interval,
	}
}

// StartProcessingJob runs until ctx is done. Call it in its own goroutine.
func (uc *OrderProcessorUseCase) StartProcessingJob(ctx context.Context) {
	logger.Info("Order processor started, interval %s", uc.interval)

	ticker := time.NewTicker(uc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			uc.processPending(ctx)
		case <-ctx.Done():
			logger.Info("Order processor stopped")
			return
		}
	}
}

func (uc *OrderProcessorUseCase) processPending(ctx context.Context) {
	orders, err := uc.orderRepo.ListByStatus(ctx, entity.OrderStatusPending, 50)
	if err != nil {
		logger.Error("Order processor failed to list pending orders: %v", err)
		return
	}

	for _, order := range orders {
		if err := uc.orderRepo.MarkProcessing(ctx, order.ID); err != nil {
			logger.Error("Failed to advance order %s: %v", order.ID, err)
			continue
		}

		for _, item := range order.Items {
			if err := uc.productRepo.AdjustInventory(ctx, item.ProductID, -item.Quantity); err != nil {
				// Inventory is advisory; the order still advances.
				logger.Warn("Failed to decrement inventory for %s on order %s: %v", item.ProductID, order.ID, err)
			}
		}

		metrics.OrdersProcessed.Inc()
		logger.Info("Order %s advanced to processing", order.ID)
	}
}
