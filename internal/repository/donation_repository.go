package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
)

type DonationRepository struct {
	db *sqlx.DB
}

func NewDonationRepository(db *sqlx.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	var created models.Donation
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO donations (amount, donor_name, message, is_anonymous)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, donation.Amount, donation.DonorName, donation.Message, donation.IsAnonymous)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListAll returns every donation, newest first.
func (r *DonationRepository) ListAll(ctx context.Context) ([]models.Donation, error) {
	donations := []models.Donation{}
	err := r.db.SelectContext(ctx, &donations, `SELECT * FROM donations ORDER BY created_at DESC`)
	return donations, err
}

// ListRecent returns the latest donations up to limit.
func (r *DonationRepository) ListRecent(ctx context.Context, limit int) ([]models.Donation, error) {
	donations := []models.Donation{}
	err := r.db.SelectContext(ctx, &donations, `
		SELECT * FROM donations ORDER BY created_at DESC LIMIT $1
	`, limit)
	return donations, err
}
