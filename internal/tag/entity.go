// AngelaMos | 2026
// entity.go

package tag

import (
	"time"
)

// Tag is either global (UserID nil, admin-managed) or scoped to the user who
// created it. Name uniqueness is enforced per scope: a user tag may not
// collide with a global tag or another tag of the same owner.
type Tag struct {
	ID        string    `db:"id"`
	UserID    *string   `db:"user_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (t *Tag) IsGlobal() bool {
	return t.UserID == nil
}
