package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	fsinfra "saturnalia/internal/infrastructure/firestore"
	"saturnalia/pkg/errors"
	"saturnalia/pkg/logger"
)

type firestoreOrderRepository struct {
	client     *firestore.Client
	subscriber *fsinfra.Subscriber
}

func NewFirestoreOrderRepository(client *firestore.Client, subscriber *fsinfra.Subscriber) repository.OrderRepository {
	return &firestoreOrderRepository{
		client:     client,
		subscriber: subscriber,
	}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		doc := r.client.Collection("orders").NewDoc()
		order.ID = doc.ID
	}

	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return classify("Failed to create order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Order", err)
		}
		return nil, classify("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection("orders").Query.
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	return r.list(ctx, query, limit, offset)
}

func (r *firestoreOrderRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection("orders").Query.OrderBy("createdAt", firestore.Desc)

	return r.list(ctx, query, limit, offset)
}

func (r *firestoreOrderRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Order, int64, error) {
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, classify("Failed to count orders", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var orders []*entity.Order

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, classify("Failed to iterate orders", err)
		}
		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, 0, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}

	return orders, total, nil
}

func (r *firestoreOrderRepository) ListByStatus(ctx context.Context, status string, limit int) ([]*entity.Order, error) {
	query := r.client.Collection("orders").Query.Where("status", "==", status)
	if limit > 0 {
		query = query.Limit(limit)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, classify("Failed to list orders by status", err)
	}

	orders := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			logger.Warn("Skipping malformed order %s: %v", doc.Ref.ID, err)
			continue
		}
		orders = append(orders, &order)
	}

	return orders, nil
}

func (r *firestoreOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.client.Collection("orders").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Order", err)
		}
		return classify("Failed to update order status", err)
	}

	return nil
}

func (r *firestoreOrderRepository) MarkProcessing(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("orders").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: entity.OrderStatusProcessing},
		{Path: "processedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return classify("Failed to mark order processing", err)
	}

	return nil
}

func (r *firestoreOrderRepository) WatchByUser(ctx context.Context, userID string, onSnapshot func([]*entity.Order)) repository.CancelFunc {
	cancel := r.subscriber.Subscribe(ctx, fsinfra.Descriptor{
		Path:    "orders",
		Filter:  &fsinfra.Filter{Field: "userId", Op: "==", Value: userID},
		OrderBy: &fsinfra.Order{Field: "createdAt", Desc: true},
	}, func(docs []*firestore.DocumentSnapshot) {
		orders := make([]*entity.Order, 0, len(docs))
		for _, doc := range docs {
			var order entity.Order
			if err := doc.DataTo(&order); err != nil {
				logger.Warn("Skipping malformed order %s: %v", doc.Ref.ID, err)
				continue
			}
			orders = append(orders, &order)
		}
		onSnapshot(orders)
	})

	return repository.CancelFunc(cancel)
}
