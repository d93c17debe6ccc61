// AngelaMos | 2026
// entity.go

package language

import (
	"time"
)

type Language struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Alias     string    `db:"alias"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
