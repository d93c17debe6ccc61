// AngelaMos | 2026
// repository.go

package language

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/snipvault/internal/core"
)

type Repository interface {
	Create(ctx context.Context, lang *Language) error
	GetByID(ctx context.Context, id string) (*Language, error)
	List(ctx context.Context) ([]Language, error)
	Update(ctx context.Context, lang *Language) error
	Delete(ctx context.Context, id string) error
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	ExistsByAlias(ctx context.Context, alias, excludeID string) (bool, error)
	CountSnippetRefs(ctx context.Context, id string) (int, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, lang *Language) error {
	query := `
		INSERT INTO languages (id, name, alias)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, lang, query, lang.ID, lang.Name, lang.Alias)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create language: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create language: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Language, error) {
	query := `
		SELECT id, name, alias, created_at, updated_at
		FROM languages
		WHERE id = $1`

	var lang Language
	err := r.db.GetContext(ctx, &lang, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get language: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get language: %w", err)
	}

	return &lang, nil
}

func (r *repository) List(ctx context.Context) ([]Language, error) {
	query := `
		SELECT id, name, alias, created_at, updated_at
		FROM languages
		ORDER BY name ASC`

	langs := []Language{}
	if err := r.db.SelectContext(ctx, &langs, query); err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}

	return langs, nil
}

func (r *repository) Update(ctx context.Context, lang *Language) error {
	query := `
		UPDATE languages
		SET name = $2, alias = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &lang.UpdatedAt, query,
		lang.ID,
		lang.Name,
		lang.Alias,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update language: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update language: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update language: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM languages WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete language: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete language: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete language: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ExistsByName(
	ctx context.Context,
	name, excludeID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM languages
			WHERE LOWER(name) = LOWER($1)
				AND ($2::uuid IS NULL OR id != $2::uuid)
		)`

	var exists bool
	err := r.db.GetContext(
		ctx, &exists, query, name, core.NullableID(excludeID),
	)
	if err != nil {
		return false, fmt.Errorf("check language name: %w", err)
	}

	return exists, nil
}

func (r *repository) ExistsByAlias(
	ctx context.Context,
	alias, excludeID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM languages
			WHERE LOWER(alias) = LOWER($1)
				AND ($2::uuid IS NULL OR id != $2::uuid)
		)`

	var exists bool
	err := r.db.GetContext(
		ctx, &exists, query, alias, core.NullableID(excludeID),
	)
	if err != nil {
		return false, fmt.Errorf("check language alias: %w", err)
	}

	return exists, nil
}

func (r *repository) CountSnippetRefs(
	ctx context.Context,
	id string,
) (int, error) {
	query := `SELECT COUNT(*) FROM snippets WHERE language_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count language refs: %w", err)
	}

	return count, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM languages`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count languages: %w", err)
	}

	return count, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
