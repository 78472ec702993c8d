package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
)

type FundRepository struct {
	db *sqlx.DB
}

func NewFundRepository(db *sqlx.DB) *FundRepository {
	return &FundRepository{db: db}
}

func (r *FundRepository) CreateAllocation(ctx context.Context, allocation *models.FundAllocation) (*models.FundAllocation, error) {
	var created models.FundAllocation
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO fund_allocations (title, description, amount, category, image_url, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, allocation.Title, allocation.Description, allocation.Amount, allocation.Category,
		allocation.ImageURL, allocation.Date)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListAllocations returns every allocation, newest first.
func (r *FundRepository) ListAllocations(ctx context.Context) ([]models.FundAllocation, error) {
	allocations := []models.FundAllocation{}
	err := r.db.SelectContext(ctx, &allocations, `SELECT * FROM fund_allocations ORDER BY created_at DESC`)
	return allocations, err
}
