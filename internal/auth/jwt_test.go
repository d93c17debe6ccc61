// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/snipvault/internal/config"
	"github.com/carterperez-dev/snipvault/internal/core"
	"github.com/carterperez-dev/snipvault/internal/user"
)

func testJWTConfig(t *testing.T) config.JWTConfig {
	t.Helper()

	dir := t.TempDir()
	cfg := config.JWTConfig{
		PrivateKeyPath:     filepath.Join(dir, "private.pem"),
		PublicKeyPath:      filepath.Join(dir, "public.pem"),
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
		Issuer:             "snipvault",
		Audience:           "snipvault-api",
	}

	require.NoError(t, GenerateKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath))
	return cfg
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig(t))
	require.NoError(t, err)

	token, err := manager.CreateAccessToken("user-123", user.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, user.RoleAdmin.String(), claims.Role)
	assert.NotEmpty(t, claims.JTI)
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig(t))
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig(t)
	cfg.AccessTokenExpire = -1 * time.Minute

	manager, err := NewJWTManager(cfg)
	require.NoError(t, err)

	token, err := manager.CreateAccessToken("user-123", user.RoleRegular)
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyAccessTokenRejectsForeignKey(t *testing.T) {
	issuing, err := NewJWTManager(testJWTConfig(t))
	require.NoError(t, err)

	verifying, err := NewJWTManager(testJWTConfig(t))
	require.NoError(t, err)

	token, err := issuing.CreateAccessToken("user-123", user.RoleRegular)
	require.NoError(t, err)

	_, err = verifying.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestAccessTokenJTIUnique(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig(t))
	require.NoError(t, err)

	first, err := manager.CreateAccessToken("user-123", user.RoleRegular)
	require.NoError(t, err)

	second, err := manager.CreateAccessToken("user-123", user.RoleRegular)
	require.NoError(t, err)

	ctx := context.Background()
	firstClaims, err := manager.VerifyAccessToken(ctx, first)
	require.NoError(t, err)
	secondClaims, err := manager.VerifyAccessToken(ctx, second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.JTI, secondClaims.JTI)
}

func TestCreateRefreshToken(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig(t))
	require.NoError(t, err)

	data, err := manager.CreateRefreshToken("user-123", "")
	require.NoError(t, err)

	assert.NotEmpty(t, data.Token)
	assert.NotEmpty(t, data.FamilyID)
	assert.Equal(t, core.HashToken(data.Token), data.Hash)
	assert.True(t, data.ExpiresAt.After(time.Now()))
}

func TestCreateRefreshTokenKeepsFamily(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig(t))
	require.NoError(t, err)

	data, err := manager.CreateRefreshToken("user-123", "family-abc")
	require.NoError(t, err)

	assert.Equal(t, "family-abc", data.FamilyID)
}
