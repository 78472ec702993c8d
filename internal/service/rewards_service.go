package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/greenstep-az/ecorewards-backend/internal/logger"
	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
	"github.com/greenstep-az/ecorewards-backend/internal/validation"
)

// WithdrawalRepository describes what the rewards service needs from the
// withdrawal ledger.
type WithdrawalRepository interface {
	Create(ctx context.Context, visitorID string, pointsAmount int, moneyAmount float64, paymentMethod, paymentDetails string) (*models.WithdrawalRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.WithdrawalRequest, error)
	ListByVisitor(ctx context.Context, visitorID string) ([]models.WithdrawalRequest, error)
	ListAll(ctx context.Context) ([]models.WithdrawalRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, adminNotes *string) (*models.WithdrawalRequest, error)
}

// RewardsService derives point balances and manages withdrawal requests.
// Balances are never stored: every read scans both ledgers, so they cannot
// drift from the underlying records.
type RewardsService struct {
	receipts           ReceiptRepository
	withdrawals        WithdrawalRepository
	minWithdrawal      int
	enforceForwardOnly bool
	hub                EventBroadcaster
}

func NewRewardsService(receipts ReceiptRepository, withdrawals WithdrawalRepository, minWithdrawalPoints int, enforceForwardOnly bool) *RewardsService {
	return &RewardsService{
		receipts:           receipts,
		withdrawals:        withdrawals,
		minWithdrawal:      minWithdrawalPoints,
		enforceForwardOnly: enforceForwardOnly,
	}
}

// SetHub attaches the admin live feed. Optional.
func (s *RewardsService) SetHub(hub EventBroadcaster) {
	s.hub = hub
}

// GetUserRewards recomputes the visitor's balances from full ledger scans.
// Pure function of ledger state: two calls with no mutation in between
// return identical results.
func (s *RewardsService) GetUserRewards(ctx context.Context, visitorID string) (*models.UserRewards, error) {
	receipts, err := s.receipts.ListByVisitor(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawals.ListByVisitor(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	rewards := models.DeriveRewards(visitorID, receipts, withdrawals)
	return &rewards, nil
}

// RequestWithdrawal validates the request against the derived balance and
// records it. The repository re-derives the balance inside a transaction
// under a per-visitor lock, so two concurrent requests cannot overdraw.
func (s *RewardsService) RequestWithdrawal(ctx context.Context, visitorID string, pointsAmount int, paymentMethod, paymentDetails string) (*models.WithdrawalRequest, error) {
	if pointsAmount <= 0 {
		return nil, invalid("points_amount", "points amount must be a positive integer")
	}
	if pointsAmount < s.minWithdrawal {
		return nil, invalid("points_amount", "minimum withdrawal is %d points", s.minWithdrawal)
	}
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, invalid("payment_method", "payment method must be %s or %s",
			models.PaymentMethodBankTransfer, models.PaymentMethodMobilePayment)
	}
	if err := validation.ValidatePaymentDetails(paymentDetails); err != nil {
		return nil, &ValidationError{Field: "payment_details", Message: err.Error()}
	}

	rewards, err := s.GetUserRewards(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	if pointsAmount > rewards.AvailableForWithdrawal {
		return nil, &repository.InsufficientPointsError{
			Requested: pointsAmount,
			Available: rewards.AvailableForWithdrawal,
		}
	}

	// 100 points = 1 AZN, fixed at creation and never recomputed.
	moneyAmount := float64(pointsAmount) / models.PointsPerManatPayout

	w, err := s.withdrawals.Create(ctx, visitorID, pointsAmount, moneyAmount, paymentMethod, paymentDetails)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("withdrawal.requested", w)
	}

	return w, nil
}

// ListWithdrawals returns the visitor's requests, newest first.
func (s *RewardsService) ListWithdrawals(ctx context.Context, visitorID string) ([]models.WithdrawalRequest, error) {
	return s.withdrawals.ListByVisitor(ctx, visitorID)
}

// ListAllWithdrawals returns every request for the admin view.
func (s *RewardsService) ListAllWithdrawals(ctx context.Context) ([]models.WithdrawalRequest, error) {
	return s.withdrawals.ListAll(ctx)
}

// SetWithdrawalStatus overwrites a request's status. Rejecting a request
// releases its points automatically on the next derivation; there is no
// stored reservation to unwind. Moving a completed request back is logged
// because the money may already have been paid out.
func (s *RewardsService) SetWithdrawalStatus(ctx context.Context, id uuid.UUID, status string, adminNotes *string) (*models.WithdrawalRequest, error) {
	if !models.ValidWithdrawalStatus(status) {
		return nil, invalid("status", "unknown withdrawal status %q", status)
	}

	if s.enforceForwardOnly {
		current, err := s.withdrawals.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !withdrawalTransitionAllowed(current.Status, status) {
			return nil, invalid("status", "transition %s -> %s is not allowed", current.Status, status)
		}
	} else if current, err := s.withdrawals.GetByID(ctx, id); err == nil &&
		current.Status == models.WithdrawalStatusCompleted && status != models.WithdrawalStatusCompleted {
		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"withdrawal_id": id,
				"from":          current.Status,
				"to":            status,
			}).Warn("Reverting a completed withdrawal; payout may already have been made")
		}
	}

	return s.withdrawals.UpdateStatus(ctx, id, status, adminNotes)
}

// withdrawalTransitionAllowed implements the forward-only withdrawal state
// machine: pending -> approved | rejected, approved -> completed | rejected.
func withdrawalTransitionAllowed(current, next string) bool {
	if current == next {
		return true
	}
	switch current {
	case models.WithdrawalStatusPending:
		return next == models.WithdrawalStatusApproved || next == models.WithdrawalStatusRejected
	case models.WithdrawalStatusApproved:
		return next == models.WithdrawalStatusCompleted || next == models.WithdrawalStatusRejected
	}
	return false
}
