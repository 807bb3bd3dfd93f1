package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *TokenManager {
	return NewTokenManager("test-secret", 30*time.Minute, 7*24*time.Hour)
}

func TestMintAndVerifyAccess(t *testing.T) {
	m := testManager()

	token, err := m.MintAccess("guardian-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := m.Verify(token, "access")
	require.NoError(t, err)
	assert.Equal(t, "guardian-1", subject)
}

func TestVerifyRejectsWrongType(t *testing.T) {
	m := testManager()

	refresh, err := m.MintRefresh("guardian-1")
	require.NoError(t, err)

	_, err = m.Verify(refresh, "access")
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := m.MintAccess("guardian-1")
	require.NoError(t, err)

	_, err = m.Verify(access, "refresh")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := testManager().MintAccess("guardian-1")
	require.NoError(t, err)

	other := NewTokenManager("different-secret", 30*time.Minute, time.Hour)
	_, err = other.Verify(token, "access")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute, time.Hour)

	token, err := m.MintAccess("guardian-1")
	require.NoError(t, err)

	_, err = m.Verify(token, "access")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := testManager().Verify("not.a.token", "access")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
