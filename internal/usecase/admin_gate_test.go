package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"saturnalia/pkg/errors"
)

func TestAdminGateUnlock(t *testing.T) {
	gate := NewAdminGate("Shivam", "Saturnalia@2025")

	token, err := gate.Unlock("Shivam", "Saturnalia@2025")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, gate.Validate(token))
}

func TestAdminGateRejectsBadCredentials(t *testing.T) {
	gate := NewAdminGate("Shivam", "Saturnalia@2025")

	for _, pair := range [][2]string{
		{"Shivam", "wrong"},
		{"wrong", "Saturnalia@2025"},
		{"", ""},
	} {
		_, err := gate.Unlock(pair[0], pair[1])
		assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	}
}

func TestAdminGateRevoke(t *testing.T) {
	gate := NewAdminGate("Shivam", "Saturnalia@2025")

	token, err := gate.Unlock("Shivam", "Saturnalia@2025")
	assert.NoError(t, err)

	gate.Revoke(token)
	assert.False(t, gate.Validate(token))

	// Revoking again is harmless.
	gate.Revoke(token)
}

func TestAdminGateUnknownToken(t *testing.T) {
	gate := NewAdminGate("Shivam", "Saturnalia@2025")

	assert.False(t, gate.Validate(""))
	assert.False(t, gate.Validate("not-a-token"))
}
