package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository/common"
)

var ErrWithdrawalNotFound = errors.New("withdrawal request not found")

// InsufficientPointsError is returned when a withdrawal would exceed the
// visitor's available balance. It carries both sides so the handler can
// report the attempted vs. available amounts.
type InsufficientPointsError struct {
	Requested int
	Available int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: requested %d, available %d", e.Requested, e.Available)
}

// availablePointsQuery derives the withdrawable balance directly in SQL:
// approved receipt points minus points reserved by every withdrawal that is
// not rejected. It must agree with models.DeriveRewards.
const availablePointsQuery = `
	SELECT
		COALESCE((SELECT SUM(points_earned) FROM receipts
			WHERE visitor_id = $1 AND status = 'approved'), 0)
		-
		COALESCE((SELECT SUM(points_amount) FROM withdrawal_requests
			WHERE visitor_id = $1 AND status IN ('pending', 'approved', 'completed')), 0)
`

type WithdrawalRepository struct {
	db *sqlx.DB
}

func NewWithdrawalRepository(db *sqlx.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// Create checks the derived balance and inserts the request in one
// transaction. A per-visitor advisory lock serializes concurrent requests so
// two of them cannot both read the same balance and overdraw it.
func (r *WithdrawalRepository) Create(ctx context.Context, visitorID string, pointsAmount int, moneyAmount float64, paymentMethod, paymentDetails string) (*models.WithdrawalRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, visitorID); err != nil {
		return nil, fmt.Errorf("withdrawal repository: acquire visitor lock: %w", err)
	}

	var available int
	if err := tx.GetContext(ctx, &available, availablePointsQuery, visitorID); err != nil {
		return nil, fmt.Errorf("withdrawal repository: derive balance: %w", err)
	}
	if available < pointsAmount {
		return nil, &InsufficientPointsError{Requested: pointsAmount, Available: available}
	}

	var w models.WithdrawalRequest
	err = tx.GetContext(ctx, &w, `
		INSERT INTO withdrawal_requests (visitor_id, points_amount, money_amount, payment_method, payment_details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, visitorID, pointsAmount, moneyAmount, paymentMethod, paymentDetails)
	if err != nil {
		return nil, err
	}

	return &w, tx.Commit()
}

func (r *WithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WithdrawalRequest, error) {
	return common.GetByID[models.WithdrawalRequest](ctx, r.db, "withdrawal_requests", id, ErrWithdrawalNotFound)
}

// ListByVisitor returns a visitor's withdrawal requests, newest first.
func (r *WithdrawalRepository) ListByVisitor(ctx context.Context, visitorID string) ([]models.WithdrawalRequest, error) {
	withdrawals := []models.WithdrawalRequest{}
	err := r.db.SelectContext(ctx, &withdrawals, `
		SELECT * FROM withdrawal_requests WHERE visitor_id = $1 ORDER BY created_at DESC
	`, visitorID)
	return withdrawals, err
}

// ListAll returns every withdrawal request, newest first (admin view).
func (r *WithdrawalRepository) ListAll(ctx context.Context) ([]models.WithdrawalRequest, error) {
	withdrawals := []models.WithdrawalRequest{}
	err := r.db.SelectContext(ctx, &withdrawals, `
		SELECT * FROM withdrawal_requests ORDER BY created_at DESC
	`)
	return withdrawals, err
}

// UpdateStatus overwrites status and admin notes and stamps processed_at.
func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, adminNotes *string) (*models.WithdrawalRequest, error) {
	var updated models.WithdrawalRequest
	err := r.db.GetContext(ctx, &updated, `
		UPDATE withdrawal_requests SET status = $2, admin_notes = $3, processed_at = $4
		WHERE id = $1
		RETURNING *
	`, id, status, adminNotes, time.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
