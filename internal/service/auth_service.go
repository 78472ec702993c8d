package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSetupDone          = errors.New("admin setup already completed")
)

// AdminRepository describes what the auth service needs from storage.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	Count(ctx context.Context) (int, error)
}

// LoginResult carries the authenticated admin and their access token.
type LoginResult struct {
	Admin     *models.AdminUser
	Token     string
	ExpiresAt time.Time
}

// AuthService encapsulates admin authentication.
type AuthService struct {
	repo         AdminRepository
	tokenManager *TokenManager
}

func NewAuthService(repo AdminRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{repo: repo, tokenManager: tokenManager}
}

// Login checks the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokenManager.Generate(admin)
	if err != nil {
		return nil, fmt.Errorf("auth service: failed to issue token: %w", err)
	}

	return &LoginResult{Admin: admin, Token: token, ExpiresAt: exp}, nil
}

// Setup creates the first superadmin account. Works only while no admin
// accounts exist.
func (s *AuthService) Setup(ctx context.Context, username, password, name string) (*models.AdminUser, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" || name == "" {
		return nil, invalid("username", "username and name are required")
	}
	if len(password) < 8 {
		return nil, invalid("password", "password must be at least 8 characters")
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSetupDone
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: failed to hash password: %w", err)
	}

	return s.repo.Create(ctx, &models.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         models.AdminRoleSuperAdmin,
	})
}
