package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ahaan1984/dee-portal-backend/internal/models"
)

// UserRepository provides database access for authentication accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns an account by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT username, password, role, district, created_at, updated_at FROM users WHERE username = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// SetPassword stores a new password hash. Returns sql.ErrNoRows when the
// account does not exist.
func (r *UserRepository) SetPassword(ctx context.Context, username, passwordHash string, updatedAt time.Time) error {
	const query = `UPDATE users SET password = $2, updated_at = $3 WHERE username = $1`
	result, err := r.db.ExecContext(ctx, query, username, passwordHash, updatedAt)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check password update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
