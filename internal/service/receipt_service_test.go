package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
)

func TestReceiptService_Submit_PointsAreFloored(t *testing.T) {
	cases := []struct {
		amount float64
		points int
	}{
		{12.50, 125},
		{0.99, 9},
		{10.04, 100},
		{1, 10},
		{99.99, 999},
	}

	for _, tc := range cases {
		repo := new(mockReceiptRepo)
		svc := NewReceiptService(repo, false)
		ctx := context.Background()

		repo.On("Create", ctx, mock.MatchedBy(func(r *models.Receipt) bool {
			return r.PointsEarned == tc.points && r.VisitorID == "v"
		})).Return(&models.Receipt{PointsEarned: tc.points}, nil)

		receipt, err := svc.Submit(ctx, "v", SubmitReceiptInput{
			VendorName:     "Green Market",
			PurchaseAmount: tc.amount,
			PurchaseDate:   "2026-01-15",
		})
		assert.NoError(t, err, "amount %.2f", tc.amount)
		assert.Equal(t, tc.points, receipt.PointsEarned, "amount %.2f", tc.amount)
		repo.AssertExpectations(t)
	}
}

func TestReceiptService_Submit_ValidationFailures(t *testing.T) {
	svc := NewReceiptService(new(mockReceiptRepo), false)
	ctx := context.Background()

	cases := []struct {
		name  string
		input SubmitReceiptInput
		field string
	}{
		{"empty vendor", SubmitReceiptInput{VendorName: "  ", PurchaseAmount: 10, PurchaseDate: "2026-01-15"}, "vendor_name"},
		{"zero amount", SubmitReceiptInput{VendorName: "Shop", PurchaseAmount: 0, PurchaseDate: "2026-01-15"}, "purchase_amount"},
		{"negative amount", SubmitReceiptInput{VendorName: "Shop", PurchaseAmount: -5, PurchaseDate: "2026-01-15"}, "purchase_amount"},
		{"huge amount", SubmitReceiptInput{VendorName: "Shop", PurchaseAmount: 100001, PurchaseDate: "2026-01-15"}, "purchase_amount"},
		{"bad date format", SubmitReceiptInput{VendorName: "Shop", PurchaseAmount: 10, PurchaseDate: "15.01.2026"}, "purchase_date"},
		{"impossible date", SubmitReceiptInput{VendorName: "Shop", PurchaseAmount: 10, PurchaseDate: "2026-02-30"}, "purchase_date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, "v", tc.input)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestReceiptService_Submit_StartsPending(t *testing.T) {
	repo := new(mockReceiptRepo)
	svc := NewReceiptService(repo, false)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(r *models.Receipt) bool {
		// The repository stamps the pending status on insert; the service
		// must not pre-set anything else.
		return r.Status == "" || r.Status == models.ReceiptStatusPending
	})).Return(&models.Receipt{Status: models.ReceiptStatusPending}, nil)

	receipt, err := svc.Submit(ctx, "v", SubmitReceiptInput{
		VendorName:     "Shop",
		PurchaseAmount: 25,
		PurchaseDate:   "2026-03-01",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.ReceiptStatusPending, receipt.Status)
}

func TestReceiptService_SetStatus_UnknownStatus(t *testing.T) {
	svc := NewReceiptService(new(mockReceiptRepo), false)

	_, err := svc.SetStatus(context.Background(), uuid.New(), "archived", nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
}

func TestReceiptService_SetStatus_PointsUntouched(t *testing.T) {
	repo := new(mockReceiptRepo)
	svc := NewReceiptService(repo, false)
	ctx := context.Background()
	id := uuid.New()
	notes := "looks genuine"

	repo.On("UpdateStatus", ctx, id, models.ReceiptStatusApproved, &notes).Return(&models.Receipt{
		ID:           id,
		Status:       models.ReceiptStatusApproved,
		PointsEarned: 125,
	}, nil)

	receipt, err := svc.SetStatus(ctx, id, models.ReceiptStatusApproved, &notes)
	assert.NoError(t, err)
	assert.Equal(t, 125, receipt.PointsEarned)
}

func TestReceiptService_SetStatus_ForwardOnlyBlocksRevert(t *testing.T) {
	repo := new(mockReceiptRepo)
	svc := NewReceiptService(repo, true)
	ctx := context.Background()
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(&models.Receipt{
		ID:     id,
		Status: models.ReceiptStatusApproved,
	}, nil)

	_, err := svc.SetStatus(ctx, id, models.ReceiptStatusPending, nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReceiptService_SetStatus_OverwriteAllowedByDefault(t *testing.T) {
	repo := new(mockReceiptRepo)
	svc := NewReceiptService(repo, false)
	ctx := context.Background()
	id := uuid.New()

	// An admin can change their mind when enforcement is off.
	repo.On("UpdateStatus", ctx, id, models.ReceiptStatusRejected, (*string)(nil)).Return(&models.Receipt{
		ID:     id,
		Status: models.ReceiptStatusRejected,
	}, nil)

	receipt, err := svc.SetStatus(ctx, id, models.ReceiptStatusRejected, nil)
	assert.NoError(t, err)
	assert.Equal(t, models.ReceiptStatusRejected, receipt.Status)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) BroadcastEvent(event string, data any) {
	m.Called(event, data)
}

func TestReceiptService_Submit_BroadcastsEvent(t *testing.T) {
	repo := new(mockReceiptRepo)
	hub := new(mockBroadcaster)
	svc := NewReceiptService(repo, false)
	svc.SetHub(hub)
	ctx := context.Background()

	created := &models.Receipt{ID: uuid.New(), PointsEarned: 100}
	repo.On("Create", ctx, mock.Anything).Return(created, nil)
	hub.On("BroadcastEvent", "receipt.submitted", created).Return()

	_, err := svc.Submit(ctx, "v", SubmitReceiptInput{
		VendorName:     "Shop",
		PurchaseAmount: 10,
		PurchaseDate:   "2026-01-15",
	})
	assert.NoError(t, err)
	hub.AssertExpectations(t)
}
