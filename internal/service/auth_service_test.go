package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
)

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error) {
	args := m.Called(ctx, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *mockAdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *mockAdminRepo) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *mockAdminRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func testTokenManager() *TokenManager {
	return NewTokenManager("test-secret-for-unit-tests-only", time.Hour)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(mockAdminRepo)
	svc := NewAuthService(repo, testTokenManager())
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	assert.NoError(t, err)

	admin := &models.AdminUser{
		ID:           uuid.New(),
		Username:     "reviewer",
		PasswordHash: string(hash),
		Role:         models.AdminRoleAdmin,
	}
	repo.On("GetByUsername", ctx, "reviewer").Return(admin, nil)

	result, err := svc.Login(ctx, "reviewer", "correct horse")
	assert.NoError(t, err)
	assert.Equal(t, admin, result.Admin)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mockAdminRepo)
	svc := NewAuthService(repo, testTokenManager())
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	repo.On("GetByUsername", ctx, "reviewer").Return(&models.AdminUser{
		Username:     "reviewer",
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(ctx, "reviewer", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := new(mockAdminRepo)
	svc := NewAuthService(repo, testTokenManager())
	ctx := context.Background()

	repo.On("GetByUsername", ctx, "ghost").Return(nil, repository.ErrAdminNotFound)

	// Unknown user and wrong password are indistinguishable to the caller.
	_, err := svc.Login(ctx, "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := NewAuthService(new(mockAdminRepo), testTokenManager())

	_, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Setup_CreatesSuperadmin(t *testing.T) {
	repo := new(mockAdminRepo)
	svc := NewAuthService(repo, testTokenManager())
	ctx := context.Background()

	repo.On("Count", ctx).Return(0, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(a *models.AdminUser) bool {
		return a.Username == "founder" &&
			a.Role == models.AdminRoleSuperAdmin &&
			bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("long enough password")) == nil
	})).Return(&models.AdminUser{Username: "founder", Role: models.AdminRoleSuperAdmin}, nil)

	admin, err := svc.Setup(ctx, " founder ", "long enough password", "Founder")
	assert.NoError(t, err)
	assert.Equal(t, models.AdminRoleSuperAdmin, admin.Role)
	repo.AssertExpectations(t)
}

func TestAuthService_Setup_RefusedOnceAdminsExist(t *testing.T) {
	repo := new(mockAdminRepo)
	svc := NewAuthService(repo, testTokenManager())
	ctx := context.Background()

	repo.On("Count", ctx).Return(1, nil)

	_, err := svc.Setup(ctx, "second", "long enough password", "Second Admin")
	assert.ErrorIs(t, err, ErrSetupDone)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Setup_ShortPassword(t *testing.T) {
	svc := NewAuthService(new(mockAdminRepo), testTokenManager())

	_, err := svc.Setup(context.Background(), "founder", "short", "Founder")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestTokenManager_GenerateAndParse(t *testing.T) {
	tm := testTokenManager()
	admin := &models.AdminUser{
		ID:       uuid.New(),
		Username: "reviewer",
		Role:     models.AdminRoleAdmin,
	}

	token, exp, err := tm.Generate(admin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	id, username, role, err := tm.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, admin.ID, id)
	assert.Equal(t, "reviewer", username)
	assert.Equal(t, models.AdminRoleAdmin, role)
}

func TestTokenManager_Parse_WrongSecret(t *testing.T) {
	tm := testTokenManager()
	other := NewTokenManager("a-completely-different-secret", time.Hour)

	token, _, err := tm.Generate(&models.AdminUser{ID: uuid.New()})
	assert.NoError(t, err)

	id, _, _, err := other.Parse(token)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, id)
}
