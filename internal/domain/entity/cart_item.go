package entity

import (
	"time"
)

// CartItem lives at users/{uid}/cart/{productId}. Name, price and image are
// copied from the product at add time and do not follow later product edits.
// A quantity of zero or less means the item does not exist; removal deletes
// the document rather than writing a zero row.
type CartItem struct {
	ID        string    `json:"id" firestore:"id"`
	ProductID string    `json:"product_id" firestore:"productId"`
	Name      string    `json:"name" firestore:"name"`
	Price     float64   `json:"price" firestore:"price"`
	ImageURL  string    `json:"image_url" firestore:"imageUrl"`
	Quantity  int       `json:"quantity" firestore:"quantity"`
	AddedAt   time.Time `json:"added_at" firestore:"addedAt"`
}

func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
