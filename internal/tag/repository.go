// AngelaMos | 2026
// repository.go

package tag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/snipvault/internal/core"
)

type Repository interface {
	Create(ctx context.Context, tag *Tag) error
	GetByID(ctx context.Context, id string) (*Tag, error)
	ListGlobal(ctx context.Context) ([]Tag, error)
	ListVisible(ctx context.Context, userID string) ([]Tag, error)
	Update(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, id string) error
	ExistsVisibleByName(
		ctx context.Context,
		name string,
		userID *string,
		excludeID string,
	) (bool, error)
	CountSnippetRefs(ctx context.Context, id string) (int, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tag *Tag) error {
	query := `
		INSERT INTO tags (id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, tag, query, tag.ID, tag.UserID, tag.Name)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create tag: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create tag: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Tag, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM tags
		WHERE id = $1`

	var tag Tag
	err := r.db.GetContext(ctx, &tag, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tag: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return &tag, nil
}

func (r *repository) ListGlobal(ctx context.Context) ([]Tag, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM tags
		WHERE user_id IS NULL
		ORDER BY name ASC`

	tags := []Tag{}
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("list global tags: %w", err)
	}

	return tags, nil
}

func (r *repository) ListVisible(
	ctx context.Context,
	userID string,
) ([]Tag, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM tags
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY name ASC`

	tags := []Tag{}
	if err := r.db.SelectContext(ctx, &tags, query, userID); err != nil {
		return nil, fmt.Errorf("list visible tags: %w", err)
	}

	return tags, nil
}

func (r *repository) Update(ctx context.Context, tag *Tag) error {
	query := `
		UPDATE tags
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &tag.UpdatedAt, query, tag.ID, tag.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update tag: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update tag: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update tag: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tags WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete tag: %w", core.ErrNotFound)
	}

	return nil
}

// ExistsVisibleByName checks the caller's visible scope: global tags plus,
// when userID is set, that user's own tags.
func (r *repository) ExistsVisibleByName(
	ctx context.Context,
	name string,
	userID *string,
	excludeID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tags
			WHERE LOWER(name) = LOWER($1)
				AND (user_id IS NULL OR user_id = $2)
				AND ($3::uuid IS NULL OR id != $3::uuid)
		)`

	var exists bool
	err := r.db.GetContext(
		ctx, &exists, query, name, userID, core.NullableID(excludeID),
	)
	if err != nil {
		return false, fmt.Errorf("check tag name: %w", err)
	}

	return exists, nil
}

func (r *repository) CountSnippetRefs(
	ctx context.Context,
	id string,
) (int, error) {
	query := `SELECT COUNT(*) FROM snippet_tags WHERE tag_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count tag refs: %w", err)
	}

	return count, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM tags`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count tags: %w", err)
	}

	return count, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
