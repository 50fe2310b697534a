package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	fsinfra "saturnalia/internal/infrastructure/firestore"
	"saturnalia/pkg/errors"
	"saturnalia/pkg/logger"
)

type firestoreCartRepository struct {
	client     *firestore.Client
	subscriber *fsinfra.Subscriber
}

func NewFirestoreCartRepository(client *firestore.Client, subscriber *fsinfra.Subscriber) repository.CartRepository {
	return &firestoreCartRepository{
		client:     client,
		subscriber: subscriber,
	}
}

func cartPath(userID string) string {
	return fmt.Sprintf("users/%s/cart", userID)
}

func (r *firestoreCartRepository) Get(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	doc, err := r.client.Collection(cartPath(userID)).Doc(productID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Cart item", err)
		}
		return nil, classify("Failed to get cart item", err)
	}

	var item entity.CartItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse cart item", err)
	}

	return &item, nil
}

func (r *firestoreCartRepository) Set(ctx context.Context, userID string, item *entity.CartItem) error {
	_, err := r.client.Collection(cartPath(userID)).Doc(item.ID).Set(ctx, item)
	if err != nil {
		return classify("Failed to write cart item", err)
	}

	return nil
}

func (r *firestoreCartRepository) IncrementQuantity(ctx context.Context, userID, productID string, delta int) error {
	_, err := r.client.Collection(cartPath(userID)).Doc(productID).Update(ctx, []firestore.Update{
		{Path: "quantity", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return classify("Failed to increment cart quantity", err)
	}

	return nil
}

func (r *firestoreCartRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	_, err := r.client.Collection(cartPath(userID)).Doc(productID).Update(ctx, []firestore.Update{
		{Path: "quantity", Value: quantity},
	})
	if err != nil {
		return classify("Failed to update cart quantity", err)
	}

	return nil
}

func (r *firestoreCartRepository) Delete(ctx context.Context, userID, productID string) error {
	// Firestore deletes are idempotent; removing a missing item succeeds.
	_, err := r.client.Collection(cartPath(userID)).Doc(productID).Delete(ctx)
	if err != nil && !isNotFound(err) {
		return classify("Failed to remove cart item", err)
	}

	return nil
}

func (r *firestoreCartRepository) Clear(ctx context.Context, userID string) error {
	docs, err := r.client.Collection(cartPath(userID)).Documents(ctx).GetAll()
	if err != nil {
		return classify("Failed to read cart for clearing", err)
	}

	// Each delete stands alone. On partial failure the surviving items stay
	// in the remote cart and reappear in the next snapshot; the first error
	// is reported to the caller.
	var firstErr error
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			logger.Warn("Failed to delete cart item %s for user %s: %v", doc.Ref.ID, userID, err)
			if firstErr == nil {
				firstErr = classify("Failed to clear cart completely", err)
			}
		}
	}

	return firstErr
}

func (r *firestoreCartRepository) List(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	docs, err := r.client.Collection(cartPath(userID)).Documents(ctx).GetAll()
	if err != nil {
		return nil, classify("Failed to list cart items", err)
	}

	items := make([]*entity.CartItem, 0, len(docs))
	for _, doc := range docs {
		var item entity.CartItem
		if err := doc.DataTo(&item); err != nil {
			logger.Warn("Skipping malformed cart item %s: %v", doc.Ref.ID, err)
			continue
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *firestoreCartRepository) Watch(ctx context.Context, userID string, onSnapshot func([]*entity.CartItem)) repository.CancelFunc {
	cancel := r.subscriber.Subscribe(ctx, fsinfra.Descriptor{
		Path: cartPath(userID),
	}, func(docs []*firestore.DocumentSnapshot) {
		items := make([]*entity.CartItem, 0, len(docs))
		for _, doc := range docs {
			var item entity.CartItem
			if err := doc.DataTo(&item); err != nil {
				logger.Warn("Skipping malformed cart item %s: %v", doc.Ref.ID, err)
				continue
			}
			items = append(items, &item)
		}
		onSnapshot(items)
	})

	return repository.CancelFunc(cancel)
}
