// AngelaMos | 2026
// entity.go

package snippet

import (
	"time"
)

// Snippet rows are always read through owner-scoped queries; a snippet that
// exists but belongs to someone else is indistinguishable from one that
// does not exist.
type Snippet struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	LanguageID  string    `db:"language_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	CodeContent string    `db:"code_content"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	// populated by joined reads
	LanguageName string `db:"language_name"`
}
