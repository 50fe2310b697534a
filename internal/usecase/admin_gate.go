package usecase

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"sync"

	"saturnalia/pkg/errors"
)

// AdminGate unlocks product mutations and the all-orders view behind a
// static credential pair. This is a capability flag, not an authorization
// system: the credentials are configured literals, and the tokens it issues
// live only in process memory.
type AdminGate struct {
	id       string
	password string

	mu     sync.Mutex
	tokens map[string]struct{}
}

func NewAdminGate(id, password string) *AdminGate {
	return &AdminGate{
		id:       id,
		password: password,
		tokens:   make(map[string]struct{}),
	}
}

// Check reports whether the supplied credentials match the configured pair.
func (g *AdminGate) Check(id, password string) bool {
	idMatch := subtle.ConstantTimeCompare([]byte(id), []byte(g.id))
	pwMatch := subtle.ConstantTimeCompare([]byte(password), []byte(g.password))
	return idMatch == 1 && pwMatch == 1
}

// Unlock validates the credentials and issues an opaque session token for
// the admin surface.
func (g *AdminGate) Unlock(id, password string) (string, error) {
	if !g.Check(id, password) {
		return "", errors.Unauthorized("Invalid admin credentials", nil)
	}

	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Internal("Failed to issue admin token", err)
	}
	token := hex.EncodeToString(buf)

	g.mu.Lock()
	g.tokens[token] = struct{}{}
	g.mu.Unlock()

	return token, nil
}

func (g *AdminGate) Validate(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.tokens[token]
	return ok
}

func (g *AdminGate) Revoke(token string) {
	g.mu.Lock()
	delete(g.tokens, token)
	g.mu.Unlock()
}
