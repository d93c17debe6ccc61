// AngelaMos | 2026
// service.go

package language

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

func (s *Service) List(ctx context.Context) ([]Language, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Language, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	req CreateLanguageRequest,
) (*Language, error) {
	if err := s.checkUnique(ctx, req.Name, req.Alias, ""); err != nil {
		return nil, err
	}

	lang := &Language{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Alias: req.Alias,
	}

	if err := s.repo.Create(ctx, lang); err != nil {
		return nil, err
	}

	return lang, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateLanguageRequest,
) (*Language, error) {
	lang, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, req.Name, req.Alias, id); err != nil {
		return nil, err
	}

	lang.Name = req.Name
	lang.Alias = req.Alias

	if err := s.repo.Update(ctx, lang); err != nil {
		return nil, err
	}

	return lang, nil
}

// Delete refuses to remove a language that snippets still reference.
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
			"Cannot delete language because it is being used by snippets",
		)
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) checkUnique(
	ctx context.Context,
	name, alias, excludeID string,
) error {
	nameTaken, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("check name: %w", err)
	}
	if nameTaken {
		return core.DuplicateError("name")
	}

	aliasTaken, err := s.repo.ExistsByAlias(ctx, alias, excludeID)
	if err != nil {
		return fmt.Errorf("check alias: %w", err)
	}
	if aliasTaken {
		return core.DuplicateError("alias")
	}

	return nil
}
