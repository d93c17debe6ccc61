// AngelaMos | 2026
// repository.go

package snippet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/snipvault/internal/core"
	"github.com/carterperez-dev/snipvault/internal/tag"
)

type Repository interface {
	WithTx(tx core.DBTX) Repository

	Create(ctx context.Context, s *Snippet) error
	GetOwned(ctx context.Context, id, userID string) (*Snippet, error)
	ListOwned(
		ctx context.Context,
		userID string,
		offset, limit int,
	) ([]Snippet, int, error)
	Update(ctx context.Context, s *Snippet) error
	Delete(ctx context.Context, id, userID string) error

	ReplaceTags(ctx context.Context, snippetID string, tagIDs []string) error
	TagsForSnippets(
		ctx context.Context,
		snippetIDs []string,
	) (map[string][]tag.Tag, error)

	Search(
		ctx context.Context,
		userID string,
		term string,
		languageID, tagID string,
		offset, limit int,
	) ([]Snippet, int, error)
	ListOwnedByLanguage(
		ctx context.Context,
		userID, languageID string,
		offset, limit int,
	) ([]Snippet, int, error)
	ListOwnedByTag(
		ctx context.Context,
		userID, tagID string,
		offset, limit int,
	) ([]Snippet, int, error)

	AddFavorite(ctx context.Context, userID, snippetID string) (bool, error)
	RemoveFavorite(ctx context.Context, userID, snippetID string) error
	IsFavorited(ctx context.Context, userID, snippetID string) (bool, error)
	ListFavorites(
		ctx context.Context,
		userID string,
		offset, limit int,
	) ([]Snippet, int, error)

	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx core.DBTX) Repository {
	return &repository{db: tx}
}

const snippetColumns = `
	s.id, s.user_id, s.language_id, s.title, s.description, s.code_content,
	s.created_at, s.updated_at, l.name AS language_name`

func (r *repository) Create(ctx context.Context, s *Snippet) error {
	query := `
		INSERT INTO snippets (
			id, user_id, language_id, title, description, code_content
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		s.ID,
		s.UserID,
		s.LanguageID,
		s.Title,
		s.Description,
		s.CodeContent,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create snippet: %w", err)
	}

	return nil
}

func (r *repository) GetOwned(
	ctx context.Context,
	id, userID string,
) (*Snippet, error) {
	query := `
		SELECT ` + snippetColumns + `
		FROM snippets s
		JOIN languages l ON l.id = s.language_id
		WHERE s.id = $1 AND s.user_id = $2`

	var s Snippet
	err := r.db.GetContext(ctx, &s, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get snippet: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get snippet: %w", err)
	}

	return &s, nil
}

func (r *repository) ListOwned(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]Snippet, int, error) {
	countQuery := `SELECT COUNT(*) FROM snippets WHERE user_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count snippets: %w", err)
	}

	query := `
		SELECT ` + snippetColumns + `
		FROM snippets s
		JOIN languages l ON l.id = s.language_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3`

	snippets := []Snippet{}
	err := r.db.SelectContext(ctx, &snippets, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list snippets: %w", err)
	}

	return snippets, total, nil
}

func (r *repository) Update(ctx context.Context, s *Snippet) error {
	query := `
		UPDATE snippets
		SET language_id = $3, title = $4, description = $5,
			code_content = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		s.ID,
		s.UserID,
		s.LanguageID,
		s.Title,
		s.Description,
		s.CodeContent,
	).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update snippet: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update snippet: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM snippets WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete snippet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snippet: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete snippet: %w", core.ErrNotFound)
	}

	return nil
}

// ReplaceTags swaps the snippet's tag set wholesale. Callers run it inside
// the same transaction as the snippet write.
func (r *repository) ReplaceTags(
	ctx context.Context,
	snippetID string,
	tagIDs []string,
) error {
	deleteQuery := `DELETE FROM snippet_tags WHERE snippet_id = $1`

	if _, err := r.db.ExecContext(ctx, deleteQuery, snippetID); err != nil {
		return fmt.Errorf("clear snippet tags: %w", err)
	}

	insertQuery := `
		INSERT INTO snippet_tags (snippet_id, tag_id)
		VALUES ($1, $2)`

	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx, insertQuery, snippetID, tagID); err != nil {
			return fmt.Errorf("link snippet tag: %w", err)
		}
	}

	return nil
}

type snippetTagRow struct {
	SnippetID string `db:"snippet_id"`
	tag.Tag
}

func (r *repository) TagsForSnippets(
	ctx context.Context,
	snippetIDs []string,
) (map[string][]tag.Tag, error) {
	result := make(map[string][]tag.Tag, len(snippetIDs))
	if len(snippetIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
		SELECT st.snippet_id, t.id, t.user_id, t.name, t.created_at, t.updated_at
		FROM snippet_tags st
		JOIN tags t ON t.id = st.tag_id
		WHERE st.snippet_id IN (?)
		ORDER BY t.name ASC`, snippetIDs)
	if err != nil {
		return nil, fmt.Errorf("build tag query: %w", err)
	}

	rows := []snippetTagRow{}
	err = r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("load snippet tags: %w", err)
	}

	for _, row := range rows {
		result[row.SnippetID] = append(result[row.SnippetID], row.Tag)
	}

	return result, nil
}

// escapeLike neutralizes LIKE metacharacters so user input matches literally.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	)
	return replacer.Replace(term)
}

func (r *repository) Search(
	ctx context.Context,
	userID string,
	term string,
	languageID, tagID string,
	offset, limit int,
) ([]Snippet, int, error) {
	pattern := "%" + escapeLike(term) + "%"

	where := `
		s.user_id = $1
		AND (
			s.title ILIKE $2 ESCAPE '\'
			OR s.description ILIKE $2 ESCAPE '\'
			OR s.code_content ILIKE $2 ESCAPE '\'
		)`
	args := []any{userID, pattern}

	if languageID != "" {
		args = append(args, languageID)
		where += fmt.Sprintf(" AND s.language_id = $%d", len(args))
	}

	if tagID != "" {
		args = append(args, tagID)
		where += fmt.Sprintf(
			` AND EXISTS (
				SELECT 1 FROM snippet_tags st
				WHERE st.snippet_id = s.id AND st.tag_id = $%d
			)`, len(args))
	}

	countQuery := `SELECT COUNT(*) FROM snippets s WHERE ` + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count search results: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM snippets s
		JOIN languages l ON l.id = s.language_id
		WHERE %s
		ORDER BY s.created_at DESC
		LIMIT $%d OFFSET $%d`,
		snippetColumns, where, len(args)-1, len(args))

	snippets := []Snippet{}
	if err := r.db.SelectContext(ctx, &snippets, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search snippets: %w", err)
	}

	return snippets, total, nil
}

func (r *repository) ListOwnedByLanguage(
	ctx context.Context,
	userID, languageID string,
	offset, limit int,
) ([]Snippet, int, error) {
	countQuery := `
		SELECT COUNT(*) FROM snippets
		WHERE user_id = $1 AND language_id = $2`

	var total int
	err := r.db.GetContext(ctx, &total, countQuery, userID, languageID)
	if err != nil {
		return nil, 0, fmt.Errorf("count snippets by language: %w", err)
	}

	query := `
		SELECT ` + snippetColumns + `
		FROM snippets s
		JOIN languages l ON l.id = s.language_id
		WHERE s.user_id = $1 AND s.language_id = $2
		ORDER BY s.created_at DESC
		LIMIT $3 OFFSET $4`

	snippets := []Snippet{}
	err = r.db.SelectContext(
		ctx, &snippets, query, userID, languageID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list snippets by language: %w", err)
	}

	return snippets, total, nil
}

func (r *repository) ListOwnedByTag(
	ctx context.Context,
	userID, tagID string,
	offset, limit int,
) ([]Snippet, int, error) {
	countQuery := `
		SELECT COUNT(*) FROM snippets s
		JOIN snippet_tags st ON st.snippet_id = s.id
		WHERE s.user_id = $1 AND st.tag_id = $2`

	var total int
	err := r.db.GetContext(ctx, &total, countQuery, userID, tagID)
	if err != nil {
		return nil, 0, fmt.Errorf("count snippets by tag: %w", err)
	}

	query := `
		SELECT ` + snippetColumns + `
		FROM snippets s
		JOIN languages l ON l.id = s.language_id
		JOIN snippet_tags st ON st.snippet_id = s.id
		WHERE s.user_id = $1 AND st.tag_id = $2
		ORDER BY s.created_at DESC
		LIMIT $3 OFFSET $4`

	snippets := []Snippet{}
	err = r.db.SelectContext(
		ctx, &snippets, query, userID, tagID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list snippets by tag: %w", err)
	}

	return snippets, total, nil
}

// AddFavorite reports whether a new row was inserted; false means the
// snippet was already favorited.
func (r *repository) AddFavorite(
	ctx context.Context,
	userID, snippetID string,
) (bool, error) {
	query := `
		INSERT INTO favorites (user_id, snippet_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, userID, snippetID)
	if err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) RemoveFavorite(
	ctx context.Context,
	userID, snippetID string,
) error {
	query := `
		DELETE FROM favorites
		WHERE user_id = $1 AND snippet_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, snippetID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	return nil
}

func (r *repository) IsFavorited(
	ctx context.Context,
	userID, snippetID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM favorites
			WHERE user_id = $1 AND snippet_id = $2
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, snippetID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	return exists, nil
}

func (r *repository) ListFavorites(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]Snippet, int, error) {
	countQuery := `SELECT COUNT(*) FROM favorites WHERE user_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	query := `
		SELECT ` + snippetColumns + `
		FROM favorites f
		JOIN snippets s ON s.id = f.snippet_id
		JOIN languages l ON l.id = s.language_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`

	snippets := []Snippet{}
	err := r.db.SelectContext(ctx, &snippets, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}

	return snippets, total, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM snippets`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count snippets: %w", err)
	}

	return count, nil
}
