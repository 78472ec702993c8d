package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
)

type mockReceiptRepo struct {
	mock.Mock
}

func (m *mockReceiptRepo) Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	args := m.Called(ctx, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) ListByVisitor(ctx context.Context, visitorID string) ([]models.Receipt, error) {
	args := m.Called(ctx, visitorID)
	return args.Get(0).([]models.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) ListAll(ctx context.Context) ([]models.Receipt, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, adminNotes *string) (*models.Receipt, error) {
	args := m.Called(ctx, id, status, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

type mockWithdrawalRepo struct {
	mock.Mock
}

func (m *mockWithdrawalRepo) Create(ctx context.Context, visitorID string, pointsAmount int, moneyAmount float64, paymentMethod, paymentDetails string) (*models.WithdrawalRequest, error) {
	args := m.Called(ctx, visitorID, pointsAmount, moneyAmount, paymentMethod, paymentDetails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WithdrawalRequest), args.Error(1)
}

func (m *mockWithdrawalRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WithdrawalRequest), args.Error(1)
}

func (m *mockWithdrawalRepo) ListByVisitor(ctx context.Context, visitorID string) ([]models.WithdrawalRequest, error) {
	args := m.Called(ctx, visitorID)
	return args.Get(0).([]models.WithdrawalRequest), args.Error(1)
}

func (m *mockWithdrawalRepo) ListAll(ctx context.Context) ([]models.WithdrawalRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.WithdrawalRequest), args.Error(1)
}

func (m *mockWithdrawalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, adminNotes *string) (*models.WithdrawalRequest, error) {
	args := m.Called(ctx, id, status, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WithdrawalRequest), args.Error(1)
}

func newRewardsService(receipts *mockReceiptRepo, withdrawals *mockWithdrawalRepo) *RewardsService {
	return NewRewardsService(receipts, withdrawals, 500, false)
}

func TestRewardsService_GetUserRewards_Derivation(t *testing.T) {
	receipts := new(mockReceiptRepo)
	withdrawals := new(mockWithdrawalRepo)
	svc := newRewardsService(receipts, withdrawals)
	ctx := context.Background()

	receipts.On("ListByVisitor", ctx, "visitor-1").Return([]models.Receipt{
		{Status: models.ReceiptStatusApproved, PointsEarned: 600},
		{Status: models.ReceiptStatusApproved, PointsEarned: 125},
		{Status: models.ReceiptStatusPending, PointsEarned: 90},
		{Status: models.ReceiptStatusRejected, PointsEarned: 50},
	}, nil)
	withdrawals.On("ListByVisitor", ctx, "visitor-1").Return([]models.WithdrawalRequest{
		{Status: models.WithdrawalStatusCompleted, PointsAmount: 100},
		{Status: models.WithdrawalStatusPending, PointsAmount: 50},
		{Status: models.WithdrawalStatusRejected, PointsAmount: 500},
	}, nil)

	rewards, err := svc.GetUserRewards(ctx, "visitor-1")
	assert.NoError(t, err)
	assert.Equal(t, 725, rewards.TotalPoints)
	assert.Equal(t, 90, rewards.PendingPoints)
	assert.Equal(t, 4, rewards.TotalReceipts)
	// Rejected withdrawals release their reservation.
	assert.Equal(t, 575, rewards.AvailableForWithdrawal)
}

func TestRewardsService_GetUserRewards_Idempotent(t *testing.T) {
	receipts := new(mockReceiptRepo)
	withdrawals := new(mockWithdrawalRepo)
	svc := newRewardsService(receipts, withdrawals)
	ctx := context.Background()

	receipts.On("ListByVisitor", ctx, "v").Return([]models.Receipt{
		{Status: models.ReceiptStatusApproved, PointsEarned: 800},
	}, nil)
	withdrawals.On("ListByVisitor", ctx, "v").Return([]models.WithdrawalRequest{}, nil)

	first, err := svc.GetUserRewards(ctx, "v")
	assert.NoError(t, err)
	second, err := svc.GetUserRewards(ctx, "v")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRewardsService_GetUserRewards_EmptyLedgers(t *testing.T) {
	receipts := new(mockReceiptRepo)
	withdrawals := new(mockWithdrawalRepo)
	svc := newRewardsService(receipts, withdrawals)
	ctx := context.Background()

	receipts.On("ListByVisitor", ctx, "new").Return([]models.Receipt{}, nil)
	withdrawals.On("ListByVisitor", ctx, "new").Return([]models.WithdrawalRequest{}, nil)

	rewards, err := svc.GetUserRewards(ctx, "new")
	assert.NoError(t, err)
	assert.Equal(t, 0, rewards.TotalPoints)
	assert.Equal(t, 0, rewards.PendingPoints)
	assert.Equal(t, 0, rewards.AvailableForWithdrawal)
	assert.Equal(t, 0, rewards.TotalReceipts)
}

func TestRewardsService_RequestWithdrawal_BelowMinimum(t *testing.T) {
	svc := newRewardsService(new(mockReceiptRepo), new(mockWithdrawalRepo))

	_, err := svc.RequestWithdrawal(context.Background(), "v", 499, models.PaymentMethodBankTransfer, "AZ21NABZ...")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "points_amount", validationErr.Field)
}

func TestRewardsService_RequestWithdrawal_InvalidMethod(t *testing.T) {
	svc := newRewardsService(new(mockReceiptRepo), new(mockWithdrawalRepo))

	_, err := svc.RequestWithdrawal(context.Background(), "v", 500, "paypal", "details")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "payment_method", validationErr.Field)
}

func TestRewardsService_RequestWithdrawal_InsufficientPoints(t *testing.T) {
	receipts := new(mockReceiptRepo)
	withdrawals := new(mockWithdrawalRepo)
	svc := newRewardsService(receipts, withdrawals)
	ctx := context.Background()

	receipts.On("ListByVisitor", ctx, "v").Return([]models.Receipt{
		{Status: models.ReceiptStatusApproved, PointsEarned: 600},
	}, nil)
	withdrawals.On("ListByVisitor", ctx, "v").Return([]models.WithdrawalRequest{
		{Status: models.WithdrawalStatusPending, PointsAmount: 100},
	}, nil)

	_, err := svc.RequestWithdrawal(ctx, "v", 501, models.PaymentMethodBankTransfer, "AZ21NABZ...")
	var insufficientErr *repository.InsufficientPointsError
	assert.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 501, insufficientErr.Requested)
	assert.Equal(t, 500, insufficientErr.Available)
}

func TestRewardsService_RequestWithdrawal_ExactBalanceSucceeds(t *testing.T) {
	receipts := new(mockReceiptRepo)
	withdrawals := new(mockWithdrawalRepo)
	svc := newRewardsService(receipts, withdrawals)
	ctx := context.Background()

	receipts.On("ListByVisitor", ctx, "v").Return([]models.Receipt{
		{Status: models.ReceiptStatusApproved, PointsEarned: 500},
	}, nil)
	withdrawals.On("ListByVisitor", ctx, "v").Return([]models.WithdrawalRequest{}, nil)

	expected := &models.WithdrawalRequest{ID: uuid.New(), PointsAmount: 500, MoneyAmount: 5}
	withdrawals.On("Create", ctx, "v", 500, 5.0, models.PaymentMethodMobilePayment, "+994501234567").Return(expected, nil)

	w, err := svc.RequestWithdrawal(ctx, "v", 500, models.PaymentMethodMobilePayment, "+994501234567")
	assert.NoError(t, err)
	assert.Equal(t, expected, w)
	withdrawals.AssertExpectations(t)
}

func TestRewardsService_RequestWithdrawal_MoneyConversion(t *testing.T) {
	receipts := new(mockReceiptRepo)
	withdrawals := new(mockWithdrawalRepo)
	svc := newRewardsService(receipts, withdrawals)
	ctx := context.Background()

	receipts.On("ListByVisitor", ctx, "v").Return([]models.Receipt{
		{Status: models.ReceiptStatusApproved, PointsEarned: 1250},
	}, nil)
	withdrawals.On("ListByVisitor", ctx, "v").Return([]models.WithdrawalRequest{}, nil)

	// 1250 points -> 12.50 AZN
	withdrawals.On("Create", ctx, "v", 1250, 12.5, models.PaymentMethodBankTransfer, "AZ21NABZ...").
		Return(&models.WithdrawalRequest{PointsAmount: 1250, MoneyAmount: 12.5}, nil)

	w, err := svc.RequestWithdrawal(ctx, "v", 1250, models.PaymentMethodBankTransfer, "AZ21NABZ...")
	assert.NoError(t, err)
	assert.Equal(t, 12.5, w.MoneyAmount)
}

func TestRewardsService_SetWithdrawalStatus_UnknownStatus(t *testing.T) {
	svc := newRewardsService(new(mockReceiptRepo), new(mockWithdrawalRepo))

	_, err := svc.SetWithdrawalStatus(context.Background(), uuid.New(), "refunded", nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestRewardsService_SetWithdrawalStatus_ForwardOnlyBlocksRevert(t *testing.T) {
	receipts := new(mockReceiptRepo)
	withdrawals := new(mockWithdrawalRepo)
	svc := NewRewardsService(receipts, withdrawals, 500, true)
	ctx := context.Background()
	id := uuid.New()

	withdrawals.On("GetByID", ctx, id).Return(&models.WithdrawalRequest{
		ID:     id,
		Status: models.WithdrawalStatusCompleted,
	}, nil)

	_, err := svc.SetWithdrawalStatus(ctx, id, models.WithdrawalStatusPending, nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	withdrawals.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRewardsService_SetWithdrawalStatus_ForwardOnlyAllowsApproval(t *testing.T) {
	receipts := new(mockReceiptRepo)
	withdrawals := new(mockWithdrawalRepo)
	svc := NewRewardsService(receipts, withdrawals, 500, true)
	ctx := context.Background()
	id := uuid.New()

	withdrawals.On("GetByID", ctx, id).Return(&models.WithdrawalRequest{
		ID:     id,
		Status: models.WithdrawalStatusPending,
	}, nil)
	expected := &models.WithdrawalRequest{ID: id, Status: models.WithdrawalStatusApproved}
	withdrawals.On("UpdateStatus", ctx, id, models.WithdrawalStatusApproved, (*string)(nil)).Return(expected, nil)

	w, err := svc.SetWithdrawalStatus(ctx, id, models.WithdrawalStatusApproved, nil)
	assert.NoError(t, err)
	assert.Equal(t, expected, w)
}

func TestRewardsService_RejectionReleasesPoints(t *testing.T) {
	receipts := new(mockReceiptRepo)
	withdrawals := new(mockWithdrawalRepo)
	svc := newRewardsService(receipts, withdrawals)
	ctx := context.Background()

	receipts.On("ListByVisitor", ctx, "v").Return([]models.Receipt{
		{Status: models.ReceiptStatusApproved, PointsEarned: 700},
	}, nil)

	// Before rejection the request reserves 600 points.
	withdrawals.On("ListByVisitor", ctx, "v").Return([]models.WithdrawalRequest{
		{Status: models.WithdrawalStatusPending, PointsAmount: 600},
	}, nil).Once()

	rewards, err := svc.GetUserRewards(ctx, "v")
	assert.NoError(t, err)
	assert.Equal(t, 100, rewards.AvailableForWithdrawal)

	// After rejection the same ledger row no longer reserves anything.
	withdrawals.On("ListByVisitor", ctx, "v").Return([]models.WithdrawalRequest{
		{Status: models.WithdrawalStatusRejected, PointsAmount: 600},
	}, nil).Once()

	rewards, err = svc.GetUserRewards(ctx, "v")
	assert.NoError(t, err)
	assert.Equal(t, 700, rewards.AvailableForWithdrawal)
}
