package models

// UserRewards is the derived view of a visitor's point balances. It is never
// persisted: every read recomputes it from the receipt and withdrawal
// ledgers, so the balance can never drift from the underlying records.
type UserRewards struct {
	VisitorID              string `json:"visitor_id"`
	TotalPoints            int    `json:"total_points"`
	TotalReceipts          int    `json:"total_receipts"`
	PendingPoints          int    `json:"pending_points"`
	AvailableForWithdrawal int    `json:"available_for_withdrawal"`
}

// DeriveRewards computes a visitor's rewards from full scans of both
// ledgers. Approved receipts earn points, pending receipts are shown
// separately, and any withdrawal that is not rejected reserves its points.
func DeriveRewards(visitorID string, receipts []Receipt, withdrawals []WithdrawalRequest) UserRewards {
	rewards := UserRewards{
		VisitorID:     visitorID,
		TotalReceipts: len(receipts),
	}

	for _, r := range receipts {
		switch r.Status {
		case ReceiptStatusApproved:
			rewards.TotalPoints += r.PointsEarned
		case ReceiptStatusPending:
			rewards.PendingPoints += r.PointsEarned
		}
	}

	reserved := 0
	for _, w := range withdrawals {
		if ReservesPoints(w.Status) {
			reserved += w.PointsAmount
		}
	}

	rewards.AvailableForWithdrawal = rewards.TotalPoints - reserved
	return rewards
}
