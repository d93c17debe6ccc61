// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/snipvault/internal/core"
)

type fakeRepo struct {
	byID map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*User{}}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeRepo) UpdateProfile(_ context.Context, u *User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return core.ErrNotFound
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeRepo) ExistsByEmail(
	_ context.Context,
	email, excludeID string,
) (bool, error) {
	for _, u := range f.byID {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Count(_ context.Context) (int, error) {
	return len(f.byID), nil
}

func TestCreateLowercasesEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	u, err := svc.Create(
		context.Background(), "Alice@Example.COM", "hash", "Alice",
	)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, RoleRegular, u.Role)
	assert.NotEmpty(t, u.ID)
}

func TestGetMeRequiresIdentity(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.GetMe(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["user-1"] = &User{
		ID:    "user-1",
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  RoleRegular,
	}
	svc := NewService(repo)

	name := "Alice B"
	u, err := svc.UpdateProfile(context.Background(), "user-1",
		UpdateProfileRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Alice B", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["user-1"] = &User{
		ID:    "user-1",
		Email: "alice@example.com",
		Name:  "Alice",
	}
	repo.byID["user-2"] = &User{
		ID:    "user-2",
		Email: "bob@example.com",
		Name:  "Bob",
	}
	svc := NewService(repo)

	email := "Bob@Example.com"
	_, err := svc.UpdateProfile(context.Background(), "user-1",
		UpdateProfileRequest{Email: &email})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdateProfileKeepOwnEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["user-1"] = &User{
		ID:    "user-1",
		Email: "alice@example.com",
		Name:  "Alice",
	}
	svc := NewService(repo)

	email := "ALICE@example.com"
	u, err := svc.UpdateProfile(context.Background(), "user-1",
		UpdateProfileRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"regular", RoleRegular, false},
		{"admin", RoleAdmin, false},
		{"manager", RoleManager, false},
		{"superuser", "", true},
		{"", "", true},
		{strings.ToUpper("admin"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanManageTaxonomy(t *testing.T) {
	assert.True(t, RoleAdmin.CanManageTaxonomy())
	assert.False(t, RoleManager.CanManageTaxonomy())
	assert.False(t, RoleRegular.CanManageTaxonomy())
}
