package entity

import (
	"time"
)

type User struct {
	ID        string    `json:"id" firestore:"id"`
	Email     string    `json:"email" firestore:"email"`
	IsAdmin   bool      `json:"is_admin" firestore:"isAdmin"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// Identity is the read-only view of the auth provider's session. A nil
// Identity means no session is active.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}
