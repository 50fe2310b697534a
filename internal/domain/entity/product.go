package entity

import (
	"time"
)

type Product struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Price       float64   `json:"price" firestore:"price"`
	ImageURL    string    `json:"image_url" firestore:"imageUrl"`
	Description string    `json:"description" firestore:"description"`
	Inventory   int       `json:"inventory" firestore:"inventory"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
