// AngelaMos | 2026
// entity.go

package user

import (
	"fmt"
	"time"
)

// Role is a closed enumeration. Authorization points switch over it
// exhaustively; anything outside the three values is rejected at parse time.
type Role string

const (
	RoleRegular Role = "regular"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleRegular, RoleAdmin, RoleManager:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleRegular, RoleAdmin, RoleManager:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// CanManageTaxonomy reports whether the role may create, update, or delete
// languages and global tags. Only admins qualify; managers are carried as a
// distinct role but hold no extra rights anywhere in the system.
func (r Role) CanManageTaxonomy() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleRegular, RoleManager:
		return false
	default:
		return false
	}
}

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
