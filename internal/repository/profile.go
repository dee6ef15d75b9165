// Package repository provides persistence implementations for the account
// service backed by PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/echoplay/echoplay/internal/models"
)

// PostgresProfileRepository implements user profile document operations
// against a PostgreSQL database.
type PostgresProfileRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
// using the provided *sql.DB.
func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

// GetProfile fetches the profile document for the given uid.
// sql.ErrNoRows is returned unchanged when the document is missing.
func (s *PostgresProfileRepository) GetProfile(ctx context.Context, uid string) (*models.UserDocument, error) {
	var doc models.UserDocument
	err := s.DB.QueryRowContext(ctx, `
		SELECT uid, username, email, bio, profile_image_url, created_at FROM users WHERE uid = $1
	`, uid).Scan(&doc.UID, &doc.Username, &doc.Email, &doc.Bio, &doc.ProfileImageURL, &doc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateProfile applies a partial update to the user's document. Nil
// fields in the update leave the stored column untouched.
//
// Returns sql.ErrNoRows when the uid names no user.
func (s *PostgresProfileRepository) UpdateProfile(ctx context.Context, uid string, update models.ProfileUpdate) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE users SET
			username = COALESCE($2, username),
			email = COALESCE($3, email),
			bio = COALESCE($4, bio),
			profile_image_url = COALESCE($5, profile_image_url)
		WHERE uid = $1
	`, uid, update.Username, update.Email, update.Bio, update.ProfileImageURL)
	if err != nil {
		return fmt.Errorf("UpdateProfile: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateProfile rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteUser removes the user record; sessions go with it via the
// schema's ON DELETE CASCADE.
//
// Returns sql.ErrNoRows when the uid names no user.
func (s *PostgresProfileRepository) DeleteUser(ctx context.Context, uid string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteUser rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
