package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/echoplay/echoplay/internal/models"
)

func setupProfileMock(t *testing.T) (*PostgresProfileRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresProfileRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

const selectProfile = `SELECT uid, username, email, bio, profile_image_url, created_at FROM users WHERE uid = $1`

func TestGetProfile_Found(t *testing.T) {
	repo, mock, cleanup := setupProfileMock(t)
	defer cleanup()

	created := time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC)
	bio := "listens to everything"
	rows := sqlmock.NewRows([]string{"uid", "username", "email", "bio", "profile_image_url", "created_at"}).
		AddRow("uid-1", "alice", "alice@example.com", bio, nil, created)
	mock.ExpectQuery(regexp.QuoteMeta(selectProfile)).
		WithArgs("uid-1").
		WillReturnRows(rows)

	doc, err := repo.GetProfile(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.UID != "uid-1" || doc.Username != "alice" {
		t.Errorf("unexpected doc: %+v", doc)
	}
	if doc.Bio == nil || *doc.Bio != bio {
		t.Errorf("bio = %v; want %q", doc.Bio, bio)
	}
	if doc.ProfileImageURL != nil {
		t.Errorf("expected nil profile image, got %v", *doc.ProfileImageURL)
	}
	if !doc.CreatedAt.Equal(created) {
		t.Errorf("createdAt = %v; want %v", doc.CreatedAt, created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	repo, mock, cleanup := setupProfileMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectProfile)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetProfile(context.Background(), "ghost")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	repo, mock, cleanup := setupProfileMock(t)
	defer cleanup()

	bio := "new bio"
	mock.ExpectExec("UPDATE users SET").
		WithArgs("uid-1", nil, nil, bio, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProfile(context.Background(), "uid-1", models.ProfileUpdate{Bio: &bio})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateProfile_UnknownUID(t *testing.T) {
	repo, mock, cleanup := setupProfileMock(t)
	defer cleanup()

	name := "nobody"
	mock.ExpectExec("UPDATE users SET").
		WithArgs("ghost", name, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateProfile(context.Background(), "ghost", models.ProfileUpdate{Username: &name})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	repo, mock, cleanup := setupProfileMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE uid = $1`)).
		WithArgs("uid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteUser(context.Background(), "uid-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteUser_UnknownUID(t *testing.T) {
	repo, mock, cleanup := setupProfileMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE uid = $1`)).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUser(context.Background(), "ghost")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
