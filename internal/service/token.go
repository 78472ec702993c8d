package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
)

// TokenManager issues and verifies admin JWT access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate issues an access token for the admin.
func (m *TokenManager) Generate(admin *models.AdminUser) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)

	claims := jwt.MapClaims{
		"sub":      admin.ID.String(),
		"username": admin.Username,
		"role":     admin.Role,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

// Parse verifies a token and extracts the admin's id, username and role.
func (m *TokenManager) Parse(token string) (uuid.UUID, string, string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", "", jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, "", "", jwt.ErrTokenInvalidClaims
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	adminID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", "", err
	}

	return adminID, username, role, nil
}
