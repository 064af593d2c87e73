package models

import (
	"time"

	"github.com/ahaan1984/dee-portal-backend/internal/empid"
)

// User is an authentication account. For provisioned staff the username
// equals the employee identifier. A nil password means the account still
// requires first-time password setup.
type User struct {
	Username  string          `db:"username" json:"username"`
	Password  *string         `db:"password" json:"-"`
	Role      empid.RoleClass `db:"role" json:"role"`
	District  *string         `db:"district" json:"district,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
