package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
)

var ErrVendorNotFound = errors.New("vendor not found")

type VendorRepository struct {
	db *sqlx.DB
}

func NewVendorRepository(db *sqlx.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create registers a vendor; it starts in the "pending" review state.
func (r *VendorRepository) Create(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	var created models.Vendor
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO vendors (name, description, address, phone, email, website, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *
	`, vendor.Name, vendor.Description, vendor.Address, vendor.Phone, vendor.Email, vendor.Website, vendor.LogoURL)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListAll returns every vendor, newest first (admin view).
func (r *VendorRepository) ListAll(ctx context.Context) ([]models.Vendor, error) {
	vendors := []models.Vendor{}
	err := r.db.SelectContext(ctx, &vendors, `SELECT * FROM vendors ORDER BY created_at DESC`)
	return vendors, err
}

// ListApproved returns the public directory, sorted by name.
func (r *VendorRepository) ListApproved(ctx context.Context) ([]models.Vendor, error) {
	vendors := []models.Vendor{}
	err := r.db.SelectContext(ctx, &vendors, `
		SELECT * FROM vendors WHERE status = $1 ORDER BY name
	`, models.VendorStatusApproved)
	return vendors, err
}

// UpdateStatus overwrites a vendor's review status.
func (r *VendorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Vendor, error) {
	var updated models.Vendor
	err := r.db.GetContext(ctx, &updated, `
		UPDATE vendors SET status = $2 WHERE id = $1 RETURNING *
	`, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
