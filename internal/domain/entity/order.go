package entity

import (
	"time"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type ShippingDetails struct {
	FirstName string `json:"first_name" firestore:"firstName"`
	LastName  string `json:"last_name" firestore:"lastName"`
	Email     string `json:"email" firestore:"email"`
	Phone     string `json:"phone" firestore:"phone"`
	Address   string `json:"address" firestore:"address"`
	City      string `json:"city" firestore:"city"`
	State     string `json:"state" firestore:"state"`
	ZipCode   string `json:"zip_code" firestore:"zipCode"`
	Country   string `json:"country" firestore:"country"`
}

// PaymentSummary keeps only the card suffix and holder name. Full card data
// is never persisted.
type PaymentSummary struct {
	CardLast4  string `json:"card_last4" firestore:"cardLast4"`
	HolderName string `json:"holder_name" firestore:"holderName"`
}

// Order is immutable after creation except for Status, UpdatedAt and
// ProcessedAt, which are advanced by the order processor.
type Order struct {
	ID          string          `json:"id" firestore:"id"`
	UserID      string          `json:"user_id" firestore:"userId"`
	Items       []CartItem      `json:"items" firestore:"items"`
	Total       float64         `json:"total" firestore:"total"`
	Status      string          `json:"status" firestore:"status"`
	Shipping    ShippingDetails `json:"shipping" firestore:"shipping"`
	Payment     PaymentSummary  `json:"payment" firestore:"payment"`
	CreatedAt   time.Time       `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time       `json:"updated_at" firestore:"updatedAt"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty" firestore:"processedAt,omitempty"`
}
