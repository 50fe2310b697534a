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

type firestoreProductRepository struct {
	client     *firestore.Client
	subscriber *fsinfra.Subscriber
}

func NewFirestoreProductRepository(client *firestore.Client, subscriber *fsinfra.Subscriber) repository.ProductRepository {
	return &firestoreProductRepository{
		client:     client,
		subscriber: subscriber,
	}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		doc := r.client.Collection("products").NewDoc()
		product.ID = doc.ID
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return classify("Failed to create product", err)
	}

	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection("products").Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, classify("Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	return &product, nil
}

func (r *firestoreProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.client.Collection("products").Query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, classify("Failed to count products", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var products []*entity.Product

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, classify("Failed to iterate products", err)
		}
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, 0, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, &product)
	}

	return products, total, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return classify("Failed to update product", err)
	}

	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("products").Doc(id).Delete(ctx)
	if err != nil {
		return classify("Failed to delete product", err)
	}

	return nil
}

func (r *firestoreProductRepository) AdjustInventory(ctx context.Context, id string, delta int) error {
	_, err := r.client.Collection("products").Doc(id).Update(ctx, []firestore.Update{
		{Path: "inventory", Value: firestore.Increment(delta)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return classify("Failed to adjust product inventory", err)
	}

	return nil
}

func (r *firestoreProductRepository) Watch(ctx context.Context, onSnapshot func([]*entity.Product)) repository.CancelFunc {
	cancel := r.subscriber.Subscribe(ctx, fsinfra.Descriptor{
		Path:    "products",
		OrderBy: &fsinfra.Order{Field: "createdAt", Desc: true},
	}, func(docs []*firestore.DocumentSnapshot) {
		products := make([]*entity.Product, 0, len(docs))
		for _, doc := range docs {
			var product entity.Product
			if err := doc.DataTo(&product); err != nil {
				logger.Warn("Skipping malformed product %s: %v", doc.Ref.ID, err)
				continue
			}
			products = append(products, &product)
		}
		onSnapshot(products)
	})

	return repository.CancelFunc(cancel)
}
