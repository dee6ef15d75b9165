// Package session holds the explicitly constructed session context
// passed to every part of the client that needs the signed-in user.
// There is no ambient global; cmd/client builds one Session and hands
// it down.
package session

import "github.com/echoplay/echoplay/internal/models"

// Session is the client's view of the current account state: the
// cached user document and the bearer token for the account service.
// A zero Session is signed out.
type Session struct {
	User  *models.UserDocument
	Token string
}

// New returns a signed-out Session.
func New() *Session {
	return &Session{}
}

// Begin installs the signed-in user and its token.
func (s *Session) Begin(user *models.UserDocument, token string) {
	s.User = user
	s.Token = token
}

// Clear drops the local account state. It always succeeds; the server
// session is the account client's concern.
func (s *Session) Clear() {
	s.User = nil
	s.Token = ""
}

// Authenticated reports whether a user is signed in. It is the single
// binary gate deciding which command set the shell offers.
func (s *Session) Authenticated() bool {
	return s.User != nil
}
