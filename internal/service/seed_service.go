package service

import (
	"context"
	"fmt"
	"math"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
)

// SeedService fills the database with demo data for development.
type SeedService struct {
	vendors   *repository.VendorRepository
	receipts  ReceiptRepository
	donations *repository.DonationRepository
	funds     *repository.FundRepository
}

func NewSeedService(vendors *repository.VendorRepository, receipts ReceiptRepository, donations *repository.DonationRepository, funds *repository.FundRepository) *SeedService {
	return &SeedService{vendors: vendors, receipts: receipts, donations: donations, funds: funds}
}

func strPtr(s string) *string { return &s }

// Seed inserts demo vendors, receipts, donations and fund allocations.
// Safe to run repeatedly, every run adds another batch.
func (s *SeedService) Seed(ctx context.Context, visitorID string) error {
	vendorSeeds := []models.Vendor{
		{Name: "Yaşıl Market", Description: strPtr("Organic grocery store in central Baku"), Address: strPtr("Nizami St 42, Baku")},
		{Name: "EcoBakı Cafe", Description: strPtr("Zero-waste cafe with reusable cups")},
		{Name: "Təmiz Ev", Description: strPtr("Refill station for household cleaning products")},
	}

	for i := range vendorSeeds {
		created, err := s.vendors.Create(ctx, &vendorSeeds[i])
		if err != nil {
			return fmt.Errorf("seed: vendor %s: %w", vendorSeeds[i].Name, err)
		}
		if _, err := s.vendors.UpdateStatus(ctx, created.ID, models.VendorStatusApproved); err != nil {
			return fmt.Errorf("seed: approve vendor %s: %w", created.Name, err)
		}
	}

	receiptSeeds := []struct {
		vendor string
		amount float64
		date   string
	}{
		{"Yaşıl Market", 24.50, "2025-08-01"},
		{"EcoBakı Cafe", 7.80, "2025-08-03"},
		{"Təmiz Ev", 15.00, "2025-08-10"},
	}
	for _, r := range receiptSeeds {
		_, err := s.receipts.Create(ctx, &models.Receipt{
			VisitorID:      visitorID,
			VendorName:     r.vendor,
			PurchaseAmount: r.amount,
			PurchaseDate:   r.date,
			PointsEarned:   int(math.Floor(r.amount * models.PointsPerManat)),
		})
		if err != nil {
			return fmt.Errorf("seed: receipt: %w", err)
		}
	}

	donationSeeds := []models.Donation{
		{Amount: 50, DonorName: strPtr("Aysel M."), Message: strPtr("Keep planting!")},
		{Amount: 120, IsAnonymous: true},
		{Amount: 25, DonorName: strPtr("Rashad G.")},
	}
	for i := range donationSeeds {
		if _, err := s.donations.Create(ctx, &donationSeeds[i]); err != nil {
			return fmt.Errorf("seed: donation: %w", err)
		}
	}

	allocationSeeds := []models.FundAllocation{
		{Title: "Tree planting in Ganja", Description: "200 saplings planted with volunteers", Amount: 80, Category: "trees", Date: "2025-07-15"},
		{Title: "School eco workshop", Description: "Recycling workshop for grade 7 students", Amount: 40, Category: "education", Date: "2025-07-28"},
	}
	for i := range allocationSeeds {
		if _, err := s.funds.CreateAllocation(ctx, &allocationSeeds[i]); err != nil {
			return fmt.Errorf("seed: allocation: %w", err)
		}
	}

	return nil
}
