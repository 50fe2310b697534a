package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	"saturnalia/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{client: client}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return classify("Failed to create user record", err)
	}

	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, classify("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	docs, err := r.client.Collection("users").
		Where("email", "==", email).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, classify("Failed to query user by email", err)
	}

	if len(docs) == 0 {
		return nil, errors.NotFound("User", nil)
	}

	var user entity.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}
