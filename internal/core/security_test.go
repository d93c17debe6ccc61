// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	valid, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)

	second, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", "not-a-real-hash")
	assert.Error(t, err)
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	valid, err := VerifyPasswordTimingSafe("secret123", &hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPasswordTimingSafe("nope", &hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyPasswordTimingSafeUnknownAccount(t *testing.T) {
	valid, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, valid)

	empty := ""
	valid, err = VerifyPasswordTimingSafe("anything", &empty)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestRefreshTokenHashing(t *testing.T) {
	token, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	hash := HashToken(token)
	assert.NotEqual(t, token, hash)
	assert.Len(t, hash, 64)

	assert.True(t, CompareTokenHash(token, hash))
	assert.False(t, CompareTokenHash("different token", hash))
}

func TestGenerateSecureTokenUnique(t *testing.T) {
	first, err := GenerateSecureToken(32)
	require.NoError(t, err)

	second, err := GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
