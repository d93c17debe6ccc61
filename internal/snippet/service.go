// AngelaMos | 2026
// service.go

package snippet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/snipvault/internal/core"
	"github.com/carterperez-dev/snipvault/internal/language"
	"github.com/carterperez-dev/snipvault/internal/tag"
)

type LanguageDirectory interface {
	GetByID(ctx context.Context, id string) (*language.Language, error)
}

type TagDirectory interface {
	GetByID(ctx context.Context, id string) (*tag.Tag, error)
}

type Service struct {
	repo      Repository
	db        *sqlx.DB
	languages LanguageDirectory
	tags      TagDirectory
}

func NewService(
	repo Repository,
	db *sqlx.DB,
	languages LanguageDirectory,
	tags TagDirectory,
) *Service {
	return &Service{
		repo:      repo,
		db:        db,
		languages: languages,
		tags:      tags,
	}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateSnippetRequest,
) (*SnippetResponse, error) {
	lang, err := s.resolveLanguage(ctx, req.LanguageID)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	snip := &Snippet{
		ID:           uuid.New().String(),
		UserID:       userID,
		LanguageID:   lang.ID,
		Title:        req.Title,
		Description:  req.Description,
		CodeContent:  req.CodeContent,
		LanguageName: lang.Name,
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.Create(ctx, snip); err != nil {
			return err
		}

		return txRepo.ReplaceTags(ctx, snip.ID, tagIDs(tags))
	})
	if err != nil {
		return nil, err
	}

	resp := toSnippetResponse(snip, tags)
	return &resp, nil
}

// Get returns the caller's snippet with resolved tags and favorite flag.
// Absent and not-owned are the same 404.
func (s *Service) Get(
	ctx context.Context,
	userID, snippetID string,
) (*SnippetResponse, error) {
	snip, err := s.repo.GetOwned(ctx, snippetID, userID)
	if err != nil {
		return nil, err
	}

	tagsBySnippet, err := s.repo.TagsForSnippets(ctx, []string{snip.ID})
	if err != nil {
		return nil, err
	}

	favorited, err := s.repo.IsFavorited(ctx, userID, snip.ID)
	if err != nil {
		return nil, err
	}

	resp := toSnippetResponse(snip, tagsBySnippet[snip.ID])
	resp.IsFavorited = &favorited
	return &resp, nil
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	page, perPage int,
) (core.Page, error) {
	offset := (page - 1) * perPage

	snippets, total, err := s.repo.ListOwned(ctx, userID, offset, perPage)
	if err != nil {
		return core.Page{}, err
	}

	items, err := s.withTags(ctx, snippets)
	if err != nil {
		return core.Page{}, err
	}

	return core.NewPage(items, page, perPage, total), nil
}

func (s *Service) Update(
	ctx context.Context,
	userID, snippetID string,
	req UpdateSnippetRequest,
) (*SnippetResponse, error) {
	snip, err := s.repo.GetOwned(ctx, snippetID, userID)
	if err != nil {
		return nil, err
	}

	lang, err := s.resolveLanguage(ctx, req.LanguageID)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	snip.LanguageID = lang.ID
	snip.LanguageName = lang.Name
	snip.Title = req.Title
	snip.Description = req.Description
	snip.CodeContent = req.CodeContent

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.Update(ctx, snip); err != nil {
			return err
		}

		return txRepo.ReplaceTags(ctx, snip.ID, tagIDs(tags))
	})
	if err != nil {
		return nil, err
	}

	resp := toSnippetResponse(snip, tags)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, userID, snippetID string) error {
	return s.repo.Delete(ctx, snippetID, userID)
}

func (s *Service) Search(
	ctx context.Context,
	userID string,
	req SearchRequest,
	page, perPage int,
) (core.Page, error) {
	offset := (page - 1) * perPage

	snippets, total, err := s.repo.Search(
		ctx,
		userID,
		req.Query,
		req.LanguageID,
		req.TagID,
		offset,
		perPage,
	)
	if err != nil {
		return core.Page{}, err
	}

	items, err := s.withTags(ctx, snippets)
	if err != nil {
		return core.Page{}, err
	}

	return core.NewPage(items, page, perPage, total), nil
}

// ListByLanguage pages the caller's snippets in one language. The language
// itself is a plain lookup: 404 only when it does not exist at all.
func (s *Service) ListByLanguage(
	ctx context.Context,
	userID, languageID string,
	page, perPage int,
) (*EntityPage, error) {
	lang, err := s.languages.GetByID(ctx, languageID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage

	snippets, total, err := s.repo.ListOwnedByLanguage(
		ctx, userID, languageID, offset, perPage,
	)
	if err != nil {
		return nil, err
	}

	items, err := s.withTags(ctx, snippets)
	if err != nil {
		return nil, err
	}

	return &EntityPage{
		Language: &lang.Name,
		Snippets: core.NewPage(items, page, perPage, total),
	}, nil
}

func (s *Service) ListByTag(
	ctx context.Context,
	userID, tagID string,
	page, perPage int,
) (*EntityPage, error) {
	t, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage

	snippets, total, err := s.repo.ListOwnedByTag(
		ctx, userID, tagID, offset, perPage,
	)
	if err != nil {
		return nil, err
	}

	items, err := s.withTags(ctx, snippets)
	if err != nil {
		return nil, err
	}

	return &EntityPage{
		Tag:      &t.Name,
		Snippets: core.NewPage(items, page, perPage, total),
	}, nil
}

// Favorite marks the caller's own snippet. Returns true when the snippet was
// already favorited so the handler can report it distinctly.
func (s *Service) Favorite(
	ctx context.Context,
	userID, snippetID string,
) (bool, error) {
	if _, err := s.repo.GetOwned(ctx, snippetID, userID); err != nil {
		return false, err
	}

	inserted, err := s.repo.AddFavorite(ctx, userID, snippetID)
	if err != nil {
		return false, err
	}

	return !inserted, nil
}

func (s *Service) Unfavorite(
	ctx context.Context,
	userID, snippetID string,
) error {
	if _, err := s.repo.GetOwned(ctx, snippetID, userID); err != nil {
		return err
	}

	return s.repo.RemoveFavorite(ctx, userID, snippetID)
}

func (s *Service) ListFavorites(
	ctx context.Context,
	userID string,
	page, perPage int,
) (core.Page, error) {
	offset := (page - 1) * perPage

	snippets, total, err := s.repo.ListFavorites(ctx, userID, offset, perPage)
	if err != nil {
		return core.Page{}, err
	}

	items, err := s.withTags(ctx, snippets)
	if err != nil {
		return core.Page{}, err
	}

	return core.NewPage(items, page, perPage, total), nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) resolveLanguage(
	ctx context.Context,
	languageID string,
) (*language.Language, error) {
	lang, err := s.languages.GetByID(ctx, languageID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ValidationError(core.FieldErrors{
				"language_id": "language does not exist",
			})
		}
		return nil, fmt.Errorf("resolve language: %w", err)
	}

	return lang, nil
}

func (s *Service) resolveTags(
	ctx context.Context,
	tagIDs []string,
) ([]tag.Tag, error) {
	tags := make([]tag.Tag, 0, len(tagIDs))
	seen := make(map[string]struct{}, len(tagIDs))

	for _, id := range tagIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		t, err := s.tags.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, core.ValidationError(core.FieldErrors{
					"tags": "one or more tags do not exist",
				})
			}
			return nil, fmt.Errorf("resolve tag: %w", err)
		}

		tags = append(tags, *t)
	}

	return tags, nil
}

func tagIDs(tags []tag.Tag) []string {
	ids := make([]string, 0, len(tags))
	for i := range tags {
		ids = append(ids, tags[i].ID)
	}
	return ids
}

func (s *Service) withTags(
	ctx context.Context,
	snippets []Snippet,
) ([]SnippetResponse, error) {
	ids := make([]string, 0, len(snippets))
	for i := range snippets {
		ids = append(ids, snippets[i].ID)
	}

	tagsBySnippet, err := s.repo.TagsForSnippets(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]SnippetResponse, 0, len(snippets))
	for i := range snippets {
		out = append(out, toSnippetResponse(
			&snippets[i],
			tagsBySnippet[snippets[i].ID],
		))
	}

	return out, nil
}
