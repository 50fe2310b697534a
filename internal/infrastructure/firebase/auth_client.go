package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"firebase.google.com/go/v4/auth"
)

type FirebaseAuthClient struct {
	client *auth.Client
	apiKey string
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
		apiKey: apiKey,
	}
}

// SignInResult carries the session material returned by the identity
// provider on a successful password sign-in.
type SignInResult struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

// SignInWithEmailPassword exchanges credentials for an ID token through the
// Identity Toolkit REST endpoint; the Admin SDK has no password sign-in.
func (f *FirebaseAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	url := fmt.Sprintf("https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=%s", f.apiKey)

	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("sign-in rejected: %s", errResp.Error.Message)
		}
		return nil, fmt.Errorf("sign-in rejected: status %d", resp.StatusCode)
	}

	var result struct {
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &SignInResult{
		UID:          result.LocalID,
		Email:        result.Email,
		IDToken:      result.IDToken,
		RefreshToken: result.RefreshToken,
	}, nil
}

// VerifyToken validates an ID token and returns the holder's uid and email.
func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", "", err
	}

	email, _ := result.Claims["email"].(string)
	return result.UID, email, nil
}

// RevokeSessions forces sign-out by revoking the user's refresh tokens.
// Outstanding ID tokens expire on their own within the hour.
func (f *FirebaseAuthClient) RevokeSessions(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	return f.client.DeleteUser(ctx, uid)
}
