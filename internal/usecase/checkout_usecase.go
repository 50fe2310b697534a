package usecase

import (
	"context"
	"strings"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	"saturnalia/pkg/errors"
	"saturnalia/pkg/logger"
	"saturnalia/pkg/metrics"
)

type CheckoutUseCase struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
}

func NewCheckoutUseCase(cartRepo repository.CartRepository, orderRepo repository.OrderRepository) *CheckoutUseCase {
	return &CheckoutUseCase{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
	}
}

type CheckoutInput struct {
	Shipping   entity.ShippingDetails
	CardNumber string
	HolderName string
}

type CheckoutResult struct {
	Order *entity.Order
	// CartCleared is false when the order was written but clearing the
	// remote cart failed; the order stands and the items reappear in the
	// next cart snapshot until cleared.
	CartCleared bool
}

// Checkout snapshots the current cart into a new order and then clears the
// cart. The two steps are not a single transaction: an order-write failure
// leaves the cart untouched and is retryable, while a cart-clear failure
// after a successful write is the documented inconsistency window.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, identity *entity.Identity, input CheckoutInput) (*CheckoutResult, error) {
	if identity == nil {
		return nil, errors.Unauthenticated("Sign in to check out", nil)
	}

	// The cart is captured once, here. Mutations that land after this read
	// belong to the next checkout.
	items, err := uc.cartRepo.List(ctx, identity.UID)
	if err != nil {
		metrics.Checkouts.WithLabelValues("error").Inc()
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.BadRequest("Cart is empty", nil)
	}

	snapshot := make([]entity.CartItem, 0, len(items))
	var total float64
	for _, item := range items {
		snapshot = append(snapshot, *item)
		total += item.Subtotal()
	}

	order := &entity.Order{
		UserID:   identity.UID,
		Items:    snapshot,
		Total:    total,
		Status:   entity.OrderStatusPending,
		Shipping: input.Shipping,
		Payment:  redactPayment(input.CardNumber, input.HolderName),
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		// No order exists and the cart is untouched; the caller may retry.
		metrics.Checkouts.WithLabelValues("error").Inc()
		return nil, err
	}

	cleared := true
	if err := uc.cartRepo.Clear(ctx, identity.UID); err != nil {
		// Order written, cart not fully cleared: accept the window rather
		// than holding the order hostage. The leftover items surface in the
		// next cart snapshot.
		logger.Warn("Order %s created but cart clear failed for %s: %v", order.ID, identity.UID, err)
		cleared = false
	}

	metrics.Checkouts.WithLabelValues("ok").Inc()
	return &CheckoutResult{Order: order, CartCleared: cleared}, nil
}

// redactPayment keeps only the holder name and the last four digits of the
// card number. Full card data never reaches the order record.
func redactPayment(cardNumber, holderName string) entity.PaymentSummary {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cardNumber)

	last4 := digits
	if len(digits) > 4 {
		last4 = digits[len(digits)-4:]
	}

	return entity.PaymentSummary{
		CardLast4:  last4,
		HolderName: holderName,
	}
}
