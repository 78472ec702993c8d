package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin roles.
const (
	AdminRoleAdmin      = "admin"
	AdminRoleSuperAdmin = "superadmin"
)

// AdminUser describes an administrator account. Only administrators may
// change receipt, vendor and withdrawal statuses.
type AdminUser struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
