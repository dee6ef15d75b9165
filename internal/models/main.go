// Package models defines the core data structures for users, profiles,
// and catalog tracks.
package models

import "time"

// User represents an application user with credentials.
// It only exists on the server side; clients see UserDocument.
type User struct {
	// UID is the unique identifier for the user.
	UID string
	// Username is the display name chosen by the user.
	Username string
	// Email is the address the user signs in with.
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
}

// UserDocument is the per-user profile document as stored and served
// by the account service. Optional fields are pointers so that "unset"
// and "empty" stay distinguishable.
type UserDocument struct {
	// UID is the unique identifier for the user.
	UID string `json:"uid"`
	// Username is the display name chosen by the user.
	Username string `json:"username"`
	// Email is the address the user signs in with.
	Email string `json:"email"`
	// Bio is the optional free-text profile description.
	Bio *string `json:"bio,omitempty"`
	// ProfileImageURL points at the user's uploaded profile image.
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileUpdate is an explicit partial update of a UserDocument.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Username        *string `json:"username,omitempty"`
	Email           *string `json:"email,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u ProfileUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.Bio == nil && u.ProfileImageURL == nil
}

// Track is a single catalog search result. Tracks are transient: they
// are never persisted directly, only copied into playlists as song
// references.
type Track struct {
	// ID is the identifier assigned by the remote catalog.
	ID int `json:"id"`
	// Title is the track title.
	Title string `json:"title"`
	// Preview is the optional URL of a playable audio preview.
	Preview *string `json:"preview"`
	// Artist holds the performing artist.
	Artist Artist `json:"artist"`
	// Album holds optional album metadata, including cover art.
	Album *Album `json:"album"`
}

// Artist is the catalog's artist record, reduced to what the
// application displays.
type Artist struct {
	Name string `json:"name"`
}

// Album is the catalog's album record, reduced to the cover image.
type Album struct {
	CoverMedium *string `json:"cover_medium"`
}
