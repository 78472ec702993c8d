package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository/common"
)

var ErrReceiptNotFound = errors.New("receipt not found")

type ReceiptRepository struct {
	db *sqlx.DB
}

func NewReceiptRepository(db *sqlx.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// Create inserts a new receipt. PointsEarned and the "pending" status are
// set by the caller at creation and never touched again by inserts.
func (r *ReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	var created models.Receipt
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO receipts (visitor_id, vendor_name, purchase_amount, purchase_date, image_url, points_earned, ocr_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *
	`, receipt.VisitorID, receipt.VendorName, receipt.PurchaseAmount, receipt.PurchaseDate,
		receipt.ImageURL, receipt.PointsEarned, receipt.OCRData)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	return common.GetByID[models.Receipt](ctx, r.db, "receipts", id, ErrReceiptNotFound)
}

// ListByVisitor returns all receipts of one visitor, newest first.
func (r *ReceiptRepository) ListByVisitor(ctx context.Context, visitorID string) ([]models.Receipt, error) {
	receipts := []models.Receipt{}
	err := r.db.SelectContext(ctx, &receipts, `
		SELECT * FROM receipts WHERE visitor_id = $1 ORDER BY created_at DESC
	`, visitorID)
	return receipts, err
}

// ListAll returns every receipt, newest first (admin view).
func (r *ReceiptRepository) ListAll(ctx context.Context) ([]models.Receipt, error) {
	receipts := []models.Receipt{}
	err := r.db.SelectContext(ctx, &receipts, `
		SELECT * FROM receipts ORDER BY created_at DESC
	`)
	return receipts, err
}

// UpdateStatus overwrites status and admin notes and stamps reviewed_at.
// points_earned is deliberately left alone.
func (r *ReceiptRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, adminNotes *string) (*models.Receipt, error) {
	var updated models.Receipt
	err := r.db.GetContext(ctx, &updated, `
		UPDATE receipts SET status = $2, admin_notes = $3, reviewed_at = $4
		WHERE id = $1
		RETURNING *
	`, id, status, adminNotes, time.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
