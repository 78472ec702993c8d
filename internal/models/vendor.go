package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor statuses follow the same review lifecycle as receipts.
const (
	VendorStatusPending  = "pending"
	VendorStatusApproved = "approved"
	VendorStatusRejected = "rejected"
)

// Vendor describes a partner shop whose receipts earn points.
type Vendor struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Address     *string   `db:"address" json:"address,omitempty"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Email       *string   `db:"email" json:"email,omitempty"`
	Website     *string   `db:"website" json:"website,omitempty"`
	LogoURL     *string   `db:"logo_url" json:"logo_url,omitempty"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ValidVendorStatus reports whether s is a known vendor status.
func ValidVendorStatus(s string) bool {
	switch s {
	case VendorStatusPending, VendorStatusApproved, VendorStatusRejected:
		return true
	}
	return false
}
