package usecase

import (
	"context"
	"strings"
	"time"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	"saturnalia/pkg/errors"
	"saturnalia/pkg/logger"
)

type AuthUseCase struct {
	userRepo           repository.UserRepository
	authClient         AuthClient
	allowedEmailDomain string
}

func NewAuthUseCase(userRepo repository.UserRepository, authClient AuthClient, allowedEmailDomain string) *AuthUseCase {
	return &AuthUseCase{
		userRepo:           userRepo,
		authClient:         authClient,
		allowedEmailDomain: allowedEmailDomain,
	}
}

type AuthResult struct {
	Identity     *entity.Identity
	Token        string
	RefreshToken string
}

func (uc *AuthUseCase) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, errors.BadRequest("Email and password are required", nil)
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	uid, err := uc.authClient.CreateUser(ctx, email, password)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	user := &entity.User{
		ID:        uid,
		Email:     email,
		IsAdmin:   false,
		CreatedAt: time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Roll back the provider account, otherwise the email is orphaned:
		// no users doc exists, yet the provider rejects every retry with an
		// email-exists error.
		if delErr := uc.authClient.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("Failed to roll back provider account %s after user record failure: %v", uid, delErr)
		}
		return nil, errors.Internal("Failed to create user record", err)
	}

	return uc.Login(ctx, email, password)
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	result, err := uc.authClient.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		logger.Warn("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	// Institutional policy sits on top of the provider: the account may be
	// valid, but a foreign email means the session is revoked immediately.
	if !uc.emailAllowed(result.Email) {
		if err := uc.authClient.RevokeSessions(ctx, result.UID); err != nil {
			logger.Error("Failed to revoke sessions for rejected account %s: %v", result.UID, err)
		}
		return nil, errors.Unauthorized("Only "+uc.allowedEmailDomain+" accounts may sign in", nil)
	}

	return &AuthResult{
		Identity:     &entity.Identity{UID: result.UID, Email: result.Email},
		Token:        result.IDToken,
		RefreshToken: result.RefreshToken,
	}, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.Unauthenticated("No active session", nil)
	}
	return uc.authClient.RevokeSessions(ctx, uid)
}

// VerifySession validates an ID token and applies the institutional domain
// restriction to the identity it carries.
func (uc *AuthUseCase) VerifySession(ctx context.Context, token string) (*entity.Identity, error) {
	uid, email, err := uc.authClient.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthenticated("Invalid or expired token", err)
	}

	if !uc.emailAllowed(email) {
		if err := uc.authClient.RevokeSessions(ctx, uid); err != nil {
			logger.Error("Failed to revoke sessions for rejected account %s: %v", uid, err)
		}
		return nil, errors.Unauthorized("Only "+uc.allowedEmailDomain+" accounts may sign in", nil)
	}

	return &entity.Identity{UID: uid, Email: email}, nil
}

func (uc *AuthUseCase) emailAllowed(email string) bool {
	if uc.allowedEmailDomain == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(uc.allowedEmailDomain))
}
