package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository/common"
)

var ErrAdminNotFound = errors.New("admin user not found")

type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error) {
	var created models.AdminUser
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO admin_users (username, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, admin.Username, admin.PasswordHash, admin.Name, admin.Role)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	return common.GetByID[models.AdminUser](ctx, r.db, "admin_users", id, ErrAdminNotFound)
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	return common.GetByField[models.AdminUser](ctx, r.db, "admin_users", "username", username, ErrAdminNotFound)
}

// Count returns the number of admin accounts; used to guard the one-off
// setup endpoint.
func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admin_users`)
	return count, err
}
