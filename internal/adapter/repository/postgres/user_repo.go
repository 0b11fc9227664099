package postgres

import (
	"context"
	"fmt"

	"github.com/sistemabancario/corebank/internal/domain"
)

// userDirectory implements domain.UserDirectory
type userDirectory struct {
	db *DB
}

// NewUserDirectory creates a new user directory backed by the users table
func NewUserDirectory(db *DB) domain.UserDirectory {
	return &userDirectory{db: db}
}

// Exists reports whether a user with the given id is registered
func (d *userDirectory) Exists(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	err := d.db.QueryRowContext(ctx, query, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}
