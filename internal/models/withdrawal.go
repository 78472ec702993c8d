package models

import (
	"time"

	"github.com/google/uuid"
)

// Withdrawal request statuses.
const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusApproved  = "approved"
	WithdrawalStatusRejected  = "rejected"
	WithdrawalStatusCompleted = "completed"
)

// Payment methods.
const (
	PaymentMethodBankTransfer  = "bank_transfer"
	PaymentMethodMobilePayment = "mobile_payment"
)

// PointsPerManatPayout is the conversion divisor: 100 points = 1 AZN.
const PointsPerManatPayout = 100

// WithdrawalRequest describes a visitor's request to convert points to money.
// MoneyAmount is derived once at creation from PointsPerManatPayout and is
// never recomputed.
type WithdrawalRequest struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	VisitorID      string     `db:"visitor_id" json:"visitor_id"`
	PointsAmount   int        `db:"points_amount" json:"points_amount"`
	MoneyAmount    float64    `db:"money_amount" json:"money_amount"`
	PaymentMethod  string     `db:"payment_method" json:"payment_method"`
	PaymentDetails string     `db:"payment_details" json:"payment_details"`
	Status         string     `db:"status" json:"status"`
	AdminNotes     *string    `db:"admin_notes" json:"admin_notes,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	ProcessedAt    *time.Time `db:"processed_at" json:"processed_at,omitempty"`
}

// ValidWithdrawalStatus reports whether s is a known withdrawal status.
func ValidWithdrawalStatus(s string) bool {
	switch s {
	case WithdrawalStatusPending, WithdrawalStatusApproved, WithdrawalStatusRejected, WithdrawalStatusCompleted:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodBankTransfer || m == PaymentMethodMobilePayment
}

// ReservesPoints reports whether a withdrawal in the given status still
// counts against the visitor's available balance. Rejected requests release
// their points on the next derivation.
func ReservesPoints(status string) bool {
	switch status {
	case WithdrawalStatusPending, WithdrawalStatusApproved, WithdrawalStatusCompleted:
		return true
	}
	return false
}
