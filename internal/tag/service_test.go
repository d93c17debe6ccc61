// AngelaMos | 2026
// service_test.go

package tag

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/snipvault/internal/core"
)

type fakeRepo struct {
	byID    map[string]*Tag
	refs    map[string]int
	deleted []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID: map[string]*Tag{},
		refs: map[string]int{},
	}
}

func (f *fakeRepo) Create(_ context.Context, t *Tag) error {
	f.byID[t.ID] = t
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Tag, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get tag: %w", core.ErrNotFound)
	}
	return t, nil
}

func (f *fakeRepo) ListGlobal(_ context.Context) ([]Tag, error) {
	out := []Tag{}
	for _, t := range f.byID {
		if t.IsGlobal() {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListVisible(
	_ context.Context,
	userID string,
) ([]Tag, error) {
	out := []Tag{}
	for _, t := range f.byID {
		if t.IsGlobal() || *t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, t *Tag) error {
	if _, ok := f.byID[t.ID]; !ok {
		return core.ErrNotFound
	}
	f.byID[t.ID] = t
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) ExistsVisibleByName(
	_ context.Context,
	name string,
	userID *string,
	excludeID string,
) (bool, error) {
	for _, t := range f.byID {
		if t.ID == excludeID || !strings.EqualFold(t.Name, name) {
			continue
		}
		if t.IsGlobal() {
			return true, nil
		}
		if userID != nil && *t.UserID == *userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CountSnippetRefs(
	_ context.Context,
	id string,
) (int, error) {
	return f.refs[id], nil
}

func (f *fakeRepo) Count(_ context.Context) (int, error) {
	return len(f.byID), nil
}

func strPtr(s string) *string {
	return &s
}

func TestCreateTagScopedToUser(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "user-1", CreateTagRequest{
		Name: "recursion",
	})
	require.NoError(t, err)

	require.NotNil(t, created.UserID)
	assert.Equal(t, "user-1", *created.UserID)
	assert.False(t, created.IsGlobal())
}

func TestCreateTagAnonymousRejected(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), "", CreateTagRequest{
		Name: "recursion",
	})
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestCreateTagCollidesWithGlobal(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["g1"] = &Tag{ID: "g1", Name: "algorithms"}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "user-1", CreateTagRequest{
		Name: "Algorithms",
	})
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.Equal(t, "tag already exists", appErr.Fields["name"])
}

func TestCreateTagCollidesWithOwnTag(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["t1"] = &Tag{ID: "t1", Name: "sorting", UserID: strPtr("user-1")}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "user-1", CreateTagRequest{
		Name: "sorting",
	})
	assert.Error(t, err)
}

func TestCreateTagSameNameDifferentUser(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["t1"] = &Tag{ID: "t1", Name: "sorting", UserID: strPtr("user-1")}
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "user-2", CreateTagRequest{
		Name: "sorting",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-2", *created.UserID)
}

func TestListVisibleScoping(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["g1"] = &Tag{ID: "g1", Name: "algorithms"}
	repo.byID["t1"] = &Tag{ID: "t1", Name: "mine", UserID: strPtr("user-1")}
	repo.byID["t2"] = &Tag{ID: "t2", Name: "theirs", UserID: strPtr("user-2")}
	svc := NewService(repo)

	visible, err := svc.ListVisible(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	anonymous, err := svc.ListVisible(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, anonymous, 1)
	assert.Equal(t, "algorithms", anonymous[0].Name)
}

func TestCreateGlobalTag(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.CreateGlobal(context.Background(), CreateTagRequest{
		Name: "interview-prep",
	})
	require.NoError(t, err)
	assert.True(t, created.IsGlobal())
}

func TestDeleteTagInUse(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["t1"] = &Tag{ID: "t1", Name: "sorting"}
	repo.refs["t1"] = 2
	svc := NewService(repo)

	err := svc.Delete(context.Background(), "t1")
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Empty(t, repo.deleted)
}

func TestDeleteTagUnused(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["t1"] = &Tag{ID: "t1", Name: "sorting"}
	svc := NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), "t1"))
	assert.Equal(t, []string{"t1"}, repo.deleted)
}

func TestUpdateTagKeepsScope(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["t1"] = &Tag{ID: "t1", Name: "old", UserID: strPtr("user-1")}
	svc := NewService(repo)

	updated, err := svc.Update(context.Background(), "t1", UpdateTagRequest{
		Name: "new",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Name)
	require.NotNil(t, updated.UserID)
	assert.Equal(t, "user-1", *updated.UserID)
}
