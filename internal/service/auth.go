// Package service provides account business logic,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/echoplay/echoplay/internal/models"
)

// ErrEmailTaken indicates a sign-up attempt with an already registered email.
var ErrEmailTaken = errors.New("email already registered")

// ErrBadCredentials indicates a sign-in attempt with an unknown email or
// a wrong password. The two cases are deliberately indistinguishable.
var ErrBadCredentials = errors.New("invalid email or password")

// sessionTTL is how long an issued session token stays valid.
const sessionTTL = 30 * 24 * time.Hour

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// EmailTaken returns true if a user with the given email exists.
	EmailTaken(ctx context.Context, email string) (bool, error)
	// CreateUser creates a new user record.
	CreateUser(ctx context.Context, user models.User) error
	// GetUserByEmail fetches the user with the given email.
	// Returns sql.ErrNoRows when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateSession stores a session token for the user.
	CreateSession(ctx context.Context, token, uid string, expiresAt time.Time) error
	// DeleteSession removes the session with the given token.
	DeleteSession(ctx context.Context, token string) error
}

// AuthService implements sign-up, sign-in, and sign-out by delegating
// to an AuthRepository.
type AuthService struct {
	// repo performs the data-layer operations.
	repo AuthRepository
}

// NewAuthService constructs a new AuthService using the provided repository.
func NewAuthService(repo AuthRepository) *AuthService {
	return &AuthService{repo: repo}
}

// SignUp registers a new user and opens a session for it. It returns
// the created user and the session token. ErrEmailTaken is returned
// when the email is already registered.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*models.User, string, error) {
	taken, err := s.repo.EmailTaken(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		UID:          uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.openSession(ctx, user.UID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// SignIn verifies the credentials and opens a session. It returns the
// user and the session token, or ErrBadCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := s.openSession(ctx, user.UID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignOut closes the session identified by token. Closing an unknown
// token is not an error.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

func (s *AuthService) openSession(ctx context.Context, uid string) (string, error) {
	token := uuid.NewString()
	if err := s.repo.CreateSession(ctx, token, uid, time.Now().Add(sessionTTL)); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}
