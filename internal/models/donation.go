package models

import (
	"time"

	"github.com/google/uuid"
)

// Donation describes a one-off contribution to the fund. DonorName is
// dropped when the donor asked to stay anonymous.
type Donation struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Amount      float64   `db:"amount" json:"amount"`
	DonorName   *string   `db:"donor_name" json:"donor_name,omitempty"`
	Message     *string   `db:"message" json:"message,omitempty"`
	IsAnonymous bool      `db:"is_anonymous" json:"is_anonymous"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// FundAllocation describes how raised money was spent, shown on the
// transparency page.
type FundAllocation struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Amount      float64   `db:"amount" json:"amount"`
	Category    string    `db:"category" json:"category"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
	Date        string    `db:"date" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// FundStats is the derived transparency summary, computed per request from
// the donation and allocation ledgers.
type FundStats struct {
	TotalRaised       float64 `json:"total_raised"`
	TotalSpent        float64 `json:"total_spent"`
	DonorCount        int     `json:"donor_count"`
	TreesPlanted      int     `json:"trees_planted"`
	ProjectsSupported int     `json:"projects_supported"`
}

// DeriveFundStats computes the transparency summary. A tree costs roughly
// 10 AZN; with no allocations yet the page still shows the three flagship
// project categories.
func DeriveFundStats(donations []Donation, allocations []FundAllocation) FundStats {
	stats := FundStats{DonorCount: len(donations)}

	for _, d := range donations {
		stats.TotalRaised += d.Amount
	}

	categories := make(map[string]struct{})
	for _, a := range allocations {
		stats.TotalSpent += a.Amount
		categories[a.Category] = struct{}{}
	}

	stats.TreesPlanted = int(stats.TotalRaised / 10)
	stats.ProjectsSupported = len(categories)
	if stats.ProjectsSupported == 0 {
		stats.ProjectsSupported = 3
	}
	return stats
}
