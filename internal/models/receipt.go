package models

import (
	"time"

	"github.com/google/uuid"
)

// Receipt statuses.
const (
	ReceiptStatusPending  = "pending"
	ReceiptStatusApproved = "approved"
	ReceiptStatusRejected = "rejected"
)

// PointsPerManat is how many points a visitor earns per 1 AZN spent.
const PointsPerManat = 10

// Receipt describes a purchase receipt submitted by a visitor.
// PointsEarned is fixed at creation and never recomputed, no matter how
// the status changes afterwards.
type Receipt struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	VisitorID      string     `db:"visitor_id" json:"visitor_id"`
	VendorName     string     `db:"vendor_name" json:"vendor_name"`
	PurchaseAmount float64    `db:"purchase_amount" json:"purchase_amount"`
	PurchaseDate   string     `db:"purchase_date" json:"purchase_date"`
	ImageURL       *string    `db:"image_url" json:"image_url,omitempty"`
	PointsEarned   int        `db:"points_earned" json:"points_earned"`
	Status         string     `db:"status" json:"status"`
	OCRData        *string    `db:"ocr_data" json:"ocr_data,omitempty"`
	AdminNotes     *string    `db:"admin_notes" json:"admin_notes,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	ReviewedAt     *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
}

// ValidReceiptStatus reports whether s is a known receipt status.
func ValidReceiptStatus(s string) bool {
	switch s {
	case ReceiptStatusPending, ReceiptStatusApproved, ReceiptStatusRejected:
		return true
	}
	return false
}
