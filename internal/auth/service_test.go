// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/snipvault/internal/core"
	"github.com/carterperez-dev/snipvault/internal/user"
)

type fakeTokenRepo struct {
	byHash  map[string]*RefreshToken
	byID    map[string]*RefreshToken
	revoked map[string]bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		byHash:  map[string]*RefreshToken{},
		byID:    map[string]*RefreshToken{},
		revoked: map[string]bool{},
	}
}

func (f *fakeTokenRepo) Create(_ context.Context, t *RefreshToken) error {
	f.byHash[t.TokenHash] = t
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTokenRepo) FindByHash(
	_ context.Context,
	hash string,
) (*RefreshToken, error) {
	t, ok := f.byHash[hash]
	if !ok {
		return nil, fmt.Errorf("find refresh token: %w", core.ErrNotFound)
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTokenRepo) MarkAsUsed(
	_ context.Context,
	id, replacedByID string,
) error {
	t, ok := f.byID[id]
	if !ok || t.IsUsed {
		return core.ErrNotFound
	}
	t.IsUsed = true
	t.ReplacedByID = &replacedByID
	return nil
}

func (f *fakeTokenRepo) RevokeByID(_ context.Context, id string) error {
	t, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	now := t.CreatedAt
	t.RevokedAt = &now
	f.revoked[id] = true
	return nil
}

func (f *fakeTokenRepo) RevokeByFamilyID(
	_ context.Context,
	familyID string,
) error {
	for _, t := range f.byID {
		if t.FamilyID == familyID {
			f.revoked[t.ID] = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(
	_ context.Context,
	userID string,
) error {
	for _, t := range f.byID {
		if t.UserID == userID {
			f.revoked[t.ID] = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var purged int64
	for hash, t := range f.byHash {
		if t.IsExpired() {
			delete(f.byHash, hash)
			delete(f.byID, t.ID)
			purged++
		}
	}
	return purged, nil
}

type fakeUserProvider struct {
	byEmail map[string]*user.User
	byID    map[string]*user.User
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{
		byEmail: map[string]*user.User{},
		byID:    map[string]*user.User{},
	}
}

func (f *fakeUserProvider) add(u *user.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserProvider) GetByID(
	_ context.Context,
	id string,
) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserProvider) Create(
	_ context.Context,
	email, passwordHash, name string,
) (*user.User, error) {
	if _, exists := f.byEmail[email]; exists {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	u := &user.User{
		ID:           "user-" + name,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         user.RoleRegular,
	}
	f.add(u)
	return u, nil
}

func newTestService(
	t *testing.T,
) (*Service, *fakeTokenRepo, *fakeUserProvider) {
	t.Helper()

	manager, err := NewJWTManager(testJWTConfig(t))
	require.NoError(t, err)

	repo := newFakeTokenRepo()
	users := newFakeUserProvider()

	return NewService(repo, manager, users, nil), repo, users
}

func TestLoginSuccess(t *testing.T) {
	svc, _, users := newTestService(t)

	hash, err := core.HashPassword("secret-password")
	require.NoError(t, err)
	users.add(&user.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Name:         "Alice",
		Role:         user.RoleRegular,
	})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "secret-password",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", resp.Tokens.TokenType)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, users := newTestService(t)

	hash, err := core.HashPassword("secret-password")
	require.NoError(t, err)
	users.add(&user.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hash,
	})

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc, _, users := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "bob@example.com",
		Password: "secret-password",
		Name:     "Bob",
	}, "", "")
	require.NoError(t, err)

	stored := users.byEmail["bob@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret-password", stored.PasswordHash)
	assert.Contains(t, stored.PasswordHash, "$argon2id$")
	assert.Equal(t, stored.ID, resp.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "carol@example.com",
		Password: "secret-password",
		Name:     "Carol",
	}, "", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Email:    "carol@example.com",
		Password: "other-password",
		Name:     "Carol2",
	}, "", "")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, repo, users := newTestService(t)

	hash, err := core.HashPassword("secret-password")
	require.NoError(t, err)
	users.add(&user.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hash,
	})

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "secret-password",
	}, "", "")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(
		context.Background(), login.Tokens.RefreshToken, "", "",
	)
	require.NoError(t, err)
	assert.NotEqual(
		t, login.Tokens.RefreshToken, refreshed.Tokens.RefreshToken,
	)

	old := repo.byHash[core.HashToken(login.Tokens.RefreshToken)]
	assert.True(t, old.IsUsed)
}

func TestRefreshReuseRevokesFamily(t *testing.T) {
	svc, repo, users := newTestService(t)

	hash, err := core.HashPassword("secret-password")
	require.NoError(t, err)
	users.add(&user.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hash,
	})

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "secret-password",
	}, "", "")
	require.NoError(t, err)

	_, err = svc.Refresh(
		context.Background(), login.Tokens.RefreshToken, "", "",
	)
	require.NoError(t, err)

	_, err = svc.Refresh(
		context.Background(), login.Tokens.RefreshToken, "", "",
	)
	assert.ErrorIs(t, err, ErrTokenReuse)

	old := repo.byHash[core.HashToken(login.Tokens.RefreshToken)]
	assert.True(t, repo.revoked[old.ID])
}

func TestRefreshUnknownToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "made-up-token", "", "")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestLogoutRejectsForeignToken(t *testing.T) {
	svc, _, users := newTestService(t)

	hash, err := core.HashPassword("secret-password")
	require.NoError(t, err)
	users.add(&user.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hash,
	})

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "secret-password",
	}, "", "")
	require.NoError(t, err)

	err = svc.Logout(
		context.Background(), login.Tokens.RefreshToken, "user-2", "",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestLogoutUnknownTokenIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Logout(context.Background(), "unknown-token", "user-1", "")
	assert.NoError(t, err)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, repo, users := newTestService(t)

	hash, err := core.HashPassword("secret-password")
	require.NoError(t, err)
	users.add(&user.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hash,
	})
	users.add(&user.User{
		ID:           "user-2",
		Email:        "bob@example.com",
		PasswordHash: hash,
	})

	login := func(email string) {
		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    email,
			Password: "secret-password",
		}, "", "")
		require.NoError(t, err)
	}
	login("alice@example.com")
	login("alice@example.com")
	login("bob@example.com")

	err = svc.LogoutAll(context.Background(), "user-1", "")
	require.NoError(t, err)

	for id, token := range repo.byID {
		if token.UserID == "user-1" {
			assert.True(t, repo.revoked[id])
		} else {
			assert.False(t, repo.revoked[id])
		}
	}
}

func TestPurgeExpiredTokens(t *testing.T) {
	svc, repo, _ := newTestService(t)

	stale := &RefreshToken{
		ID:        "token-stale",
		UserID:    "user-1",
		TokenHash: "hash-stale",
		FamilyID:  "family-1",
		ExpiresAt: time.Now().Add(-48 * time.Hour),
	}
	live := &RefreshToken{
		ID:        "token-live",
		UserID:    "user-1",
		TokenHash: "hash-live",
		FamilyID:  "family-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), stale))
	require.NoError(t, repo.Create(context.Background(), live))

	purged, err := svc.PurgeExpiredTokens(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), purged)
	assert.NotContains(t, repo.byID, "token-stale")
	assert.Contains(t, repo.byID, "token-live")
}
