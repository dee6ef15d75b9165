// Package repository provides persistence implementations for the account
// service backed by PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/echoplay/echoplay/internal/models"
)

// PostgresAuthRepository implements user and session persistence using a
// PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the
// given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// EmailTaken checks whether a user with the specified email already exists.
// It returns true if the email is taken, false otherwise.
// If an error occurs during the query, it is returned.
func (s *PostgresAuthRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

// CreateUser inserts a new user record. The creation timestamp is
// assigned by the database.
// Returns any error encountered while executing the insertion.
func (s *PostgresAuthRepository) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO users (uid, username, email, password_hash) VALUES ($1, $2, $3, $4)`,
		user.UID, user.Username, user.Email, user.PasswordHash,
	)
	return err
}

// GetUserByEmail fetches the user signing in with the given email.
// sql.ErrNoRows is returned unchanged when no such user exists.
func (s *PostgresAuthRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRowContext(ctx, `
		SELECT uid, username, email, password_hash FROM users WHERE email = $1
	`, email).Scan(&user.UID, &user.Username, &user.Email, &user.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateSession stores a new session token for the user.
func (s *PostgresAuthRepository) CreateSession(ctx context.Context, token, uid string, expiresAt time.Time) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO sessions (token, uid, expires_at) VALUES ($1, $2, $3)`,
		token, uid, expiresAt,
	)
	return err
}

// GetSessionUID resolves a session token to the owning user's uid.
// An expired or unknown token yields sql.ErrNoRows.
func (s *PostgresAuthRepository) GetSessionUID(ctx context.Context, token string) (string, error) {
	var uid string
	err := s.DB.QueryRowContext(ctx, `
		SELECT uid FROM sessions WHERE token = $1 AND expires_at > now()
	`, token).Scan(&uid)
	if err != nil {
		return "", err
	}
	return uid, nil
}

// DeleteSession removes the session with the given token. Deleting a
// token that does not exist is not an error.
func (s *PostgresAuthRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}
