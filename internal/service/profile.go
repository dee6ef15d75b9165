// Package service provides account business logic,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/echoplay/echoplay/internal/models"
)

// ErrNotFound indicates the requested user document does not exist.
var ErrNotFound = errors.New("user document not found")

// ProfileRepository defines the persistence operations needed by the
// ProfileService.
type ProfileRepository interface {
	// GetProfile fetches the profile document for the given uid.
	// Returns sql.ErrNoRows when the document is missing.
	GetProfile(ctx context.Context, uid string) (*models.UserDocument, error)
	// UpdateProfile applies a partial update to the document.
	// Returns sql.ErrNoRows when the uid names no user.
	UpdateProfile(ctx context.Context, uid string, update models.ProfileUpdate) error
	// DeleteUser removes the user record and everything owned by it.
	// Returns sql.ErrNoRows when the uid names no user.
	DeleteUser(ctx context.Context, uid string) error
}

// ProfileService implements profile-document business logic.
type ProfileService struct {
	// repo is the underlying persistence repository.
	repo ProfileRepository
}

// NewProfileService constructs a ProfileService with the provided repository.
func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Fetch returns the profile document for uid, or ErrNotFound.
func (s *ProfileService) Fetch(ctx context.Context, uid string) (*models.UserDocument, error) {
	doc, err := s.repo.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Update applies a partial profile update. An update with no fields set
// is a no-op. Returns ErrNotFound when the uid names no user.
func (s *ProfileService) Update(ctx context.Context, uid string, update models.ProfileUpdate) error {
	if update.Empty() {
		return nil
	}
	err := s.repo.UpdateProfile(ctx, uid, update)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes the account for uid. Returns ErrNotFound when the uid
// names no user.
func (s *ProfileService) Delete(ctx context.Context, uid string) error {
	err := s.repo.DeleteUser(ctx, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
