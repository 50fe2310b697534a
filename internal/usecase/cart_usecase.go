package usecase

import (
	"context"
	"time"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	"saturnalia/pkg/errors"
	"saturnalia/pkg/metrics"
)

type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart puts one unit of the product into the user's cart. If the item
// already exists the quantity is advanced with an atomic server-side
// increment, so concurrent adds from the same identity do not lose updates.
// The existence check itself is not transactional: two adds racing past it
// can both take the create path, and the second Set wins with quantity 1.
// Name, price and image are copied from the product at add time; later
// product edits do not touch existing cart entries.
func (uc *CartUseCase) AddToCart(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return errors.Unauthenticated("Sign in to add items to your cart", nil)
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	existing, err := uc.cartRepo.Get(ctx, userID, productID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		metrics.RecordMutation("cart_add", err)
		return err
	}

	if existing != nil {
		err = uc.cartRepo.IncrementQuantity(ctx, userID, productID, 1)
	} else {
		err = uc.cartRepo.Set(ctx, userID, &entity.CartItem{
			ID:        product.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  1,
			AddedAt:   time.Now(),
		})
	}

	metrics.RecordMutation("cart_add", err)
	return err
}

// UpdateQuantity overwrites the quantity field only. A quantity of zero or
// less is a removal, never a zero row.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if userID == "" {
		return errors.Unauthenticated("Sign in to modify your cart", nil)
	}

	if quantity <= 0 {
		return uc.RemoveFromCart(ctx, userID, productID)
	}

	err := uc.cartRepo.UpdateQuantity(ctx, userID, productID, quantity)
	metrics.RecordMutation("cart_update", err)
	return err
}

// RemoveFromCart is idempotent; removing an absent item is not an error.
func (uc *CartUseCase) RemoveFromCart(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return errors.Unauthenticated("Sign in to modify your cart", nil)
	}

	err := uc.cartRepo.Delete(ctx, userID, productID)
	metrics.RecordMutation("cart_remove", err)
	return err
}

// ClearCart deletes every item in the user's cart. On partial failure the
// surviving items remain remote and reappear in the next snapshot; the
// caller must not treat the cart as empty until a snapshot confirms it.
func (uc *CartUseCase) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.Unauthenticated("Sign in to modify your cart", nil)
	}

	err := uc.cartRepo.Clear(ctx, userID)
	metrics.RecordMutation("cart_clear", err)
	return err
}

func (uc *CartUseCase) GetCart(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to view your cart", nil)
	}

	return uc.cartRepo.List(ctx, userID)
}
