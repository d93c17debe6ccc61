// AngelaMos | 2026
// service.go

package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/snipvault/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListVisible returns global tags plus the caller's own. Anonymous callers
// (empty userID) see global tags only.
func (s *Service) ListVisible(
	ctx context.Context,
	userID string,
) ([]Tag, error) {
	if userID == "" {
		return s.repo.ListGlobal(ctx)
	}
	return s.repo.ListVisible(ctx, userID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Tag, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a tag scoped to the calling user. The name must be free in the
// caller's visible scope, so a collision with a global tag also rejects.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateTagRequest,
) (*Tag, error) {
	if userID == "" {
		return nil, fmt.Errorf("create tag: %w", core.ErrUnauthorized)
	}

	if err := s.checkScopeUnique(ctx, req.Name, &userID, ""); err != nil {
		return nil, err
	}

	tag := &Tag{
		ID:     uuid.New().String(),
		UserID: &userID,
		Name:   req.Name,
	}

	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// CreateGlobal adds an admin-managed tag visible to everyone.
func (s *Service) CreateGlobal(
	ctx context.Context,
	req CreateTagRequest,
) (*Tag, error) {
	if err := s.checkScopeUnique(ctx, req.Name, nil, ""); err != nil {
		return nil, err
	}

	tag := &Tag{
		ID:   uuid.New().String(),
		Name: req.Name,
	}

	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// Update renames a tag within its existing scope.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateTagRequest,
) (*Tag, error) {
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkScopeUnique(ctx, req.Name, tag.UserID, id); err != nil {
		return nil, err
	}

	tag.Name = req.Name

	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// Delete refuses to remove a tag that snippets still reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	refs, err := s.repo.CountSnippetRefs(ctx, id)
	if err != nil {
		return err
	}

	if refs > 0 {
		return core.ConflictError(
			"Cannot delete tag because it is being used by snippets",
		)
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) checkScopeUnique(
	ctx context.Context,
	name string,
	userID *string,
	excludeID string,
) error {
	taken, err := s.repo.ExistsVisibleByName(ctx, name, userID, excludeID)
	if err != nil {
		return fmt.Errorf("check tag name: %w", err)
	}

	if taken {
		return core.ValidationError(core.FieldErrors{
			"name": "tag already exists",
		})
	}

	return nil
}
