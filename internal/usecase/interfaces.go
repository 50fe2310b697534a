package usecase

import (
	"context"

	"saturnalia/internal/infrastructure/firebase"
)

type AuthClient interface {
	CreateUser(ctx context.Context, email, password string) (string, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (*firebase.SignInResult, error)
	VerifyToken(ctx context.Context, token string) (uid, email string, err error)
	RevokeSessions(ctx context.Context, uid string) error
	DeleteUser(ctx context.Context, uid string) error
}
