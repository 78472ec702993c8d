package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/validation"
)

// ReceiptRepository describes what the receipt service needs from storage.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error)
	ListByVisitor(ctx context.Context, visitorID string) ([]models.Receipt, error)
	ListAll(ctx context.Context) ([]models.Receipt, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, adminNotes *string) (*models.Receipt, error)
}

// EventBroadcaster pushes live events to the admin feed.
type EventBroadcaster interface {
	BroadcastEvent(event string, data any)
}

// SubmitReceiptInput carries the visitor-provided fields of a new receipt.
type SubmitReceiptInput struct {
	VendorName     string
	PurchaseAmount float64
	PurchaseDate   string
	ImageURL       *string
	OCRData        *string
}

// ReceiptService implements the receipt lifecycle: submission by visitors
// and status review by administrators.
type ReceiptService struct {
	repo               ReceiptRepository
	hub                EventBroadcaster
	enforceForwardOnly bool
}

func NewReceiptService(repo ReceiptRepository, enforceForwardOnly bool) *ReceiptService {
	return &ReceiptService{repo: repo, enforceForwardOnly: enforceForwardOnly}
}

// SetHub attaches the admin live feed. Optional.
func (s *ReceiptService) SetHub(hub EventBroadcaster) {
	s.hub = hub
}

// Submit validates the input and records a new pending receipt. Points are
// computed once here, floor(amount * 10), and never recomputed afterwards.
func (s *ReceiptService) Submit(ctx context.Context, visitorID string, in SubmitReceiptInput) (*models.Receipt, error) {
	if err := validation.ValidateVendorName(in.VendorName); err != nil {
		return nil, &ValidationError{Field: "vendor_name", Message: err.Error()}
	}
	if err := validation.ValidatePurchaseAmount(in.PurchaseAmount); err != nil {
		return nil, &ValidationError{Field: "purchase_amount", Message: err.Error()}
	}
	if err := validation.ValidatePurchaseDate(in.PurchaseDate); err != nil {
		return nil, &ValidationError{Field: "purchase_date", Message: err.Error()}
	}

	receipt := &models.Receipt{
		VisitorID:      visitorID,
		VendorName:     in.VendorName,
		PurchaseAmount: in.PurchaseAmount,
		PurchaseDate:   in.PurchaseDate,
		ImageURL:       in.ImageURL,
		OCRData:        in.OCRData,
		PointsEarned:   int(math.Floor(in.PurchaseAmount * models.PointsPerManat)),
	}

	created, err := s.repo.Create(ctx, receipt)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("receipt.submitted", created)
	}

	return created, nil
}

// List returns all receipts of the visitor, newest first.
func (s *ReceiptService) List(ctx context.Context, visitorID string) ([]models.Receipt, error) {
	return s.repo.ListByVisitor(ctx, visitorID)
}

// ListAll returns every receipt for the admin review queue.
func (s *ReceiptService) ListAll(ctx context.Context) ([]models.Receipt, error) {
	return s.repo.ListAll(ctx)
}

// SetStatus overwrites a receipt's review status. By default any status may
// replace any other; with forward-only enforcement on, a reviewed receipt
// cannot go back to pending and a decided one cannot flip.
func (s *ReceiptService) SetStatus(ctx context.Context, id uuid.UUID, status string, adminNotes *string) (*models.Receipt, error) {
	if !models.ValidReceiptStatus(status) {
		return nil, invalid("status", "unknown receipt status %q", status)
	}

	if s.enforceForwardOnly {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !receiptTransitionAllowed(current.Status, status) {
			return nil, invalid("status", "transition %s -> %s is not allowed", current.Status, status)
		}
	}

	return s.repo.UpdateStatus(ctx, id, status, adminNotes)
}

// receiptTransitionAllowed implements the forward-only receipt state
// machine: pending -> approved | rejected. Re-setting the same status is a
// no-op overwrite and always allowed.
func receiptTransitionAllowed(current, next string) bool {
	if current == next {
		return true
	}
	return current == models.ReceiptStatusPending
}
