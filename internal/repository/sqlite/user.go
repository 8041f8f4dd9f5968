package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/portfolio-backend/internal/apperror"
	"github.com/sakif/portfolio-backend/internal/model"
	"github.com/sakif/portfolio-backend/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// adminUsername is the single seeded account. The schema's UNIQUE constraint
// on username is what actually enforces "at most one admin".
const adminUsername = "admin"

// FindByUsername returns the user with the given username.
// Returns apperror.ErrNotFound if no such user exists. The auth service is
// careful to collapse that into the same "invalid credentials" message a
// wrong password produces, so don't surface this error to clients directly.
func (db *DB) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE username = ?`,
		username,
	).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: fmt.Sprintf("user %q not found", username),
			}
		}
		return nil, fmt.Errorf("sqlite: finding user %q: %w", username, err)
	}

	return &u, nil
}

// SeedAdmin inserts the admin row if it doesn't exist yet.
//
// INSERT OR IGNORE + UNIQUE(username) makes this a single atomic statement:
// if two processes race at first startup, exactly one insert wins and the
// other is a no-op — no SELECT-then-INSERT window. The returned bool reports
// whether this call created the row, so the caller can log "seeded" vs
// "already present" accurately.
func (db *DB) SeedAdmin(ctx context.Context, passwordHash string) (bool, error) {
	result, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (username, password) VALUES (?, ?)`,
		adminUsername,
		passwordHash,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: seeding admin user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// UpdatePassword replaces the stored hash for the given username.
// Only reachable from the cmd/admin reset tool — the HTTP API deliberately
// exposes no user mutation.
func (db *DB) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET password = ? WHERE username = ?`,
		passwordHash,
		username,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating password for %q: %w", username, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: fmt.Sprintf("user %q not found", username),
		}
	}

	return nil
}
