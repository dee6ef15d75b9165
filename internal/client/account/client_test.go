package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/echoplay/internal/models"
)

func TestSignUp_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/signup", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bob", req["username"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"uid":"uid-1","username":"bob","email":"bob@example.com","token":"tok-1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	user, token, err := c.SignUp(context.Background(), "bob", "bob@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "bob", user.Username)
}

func TestSignUp_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "email already registered", http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	_, _, err := c.SignUp(context.Background(), "bob", "bob@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrAuth)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestSignIn_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	_, _, err := c.SignIn(context.Background(), "bob@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestSignOut_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	require.NoError(t, c.SignOut(context.Background(), "tok-1"))
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestFetchProfile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "user not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	_, err := c.FetchProfile(context.Background(), "tok-1", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchProfile_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/uid-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uid":"uid-1","username":"alice","email":"alice@example.com","bio":"hi","createdAt":"2024-11-26T00:00:00Z"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	doc, err := c.FetchProfile(context.Background(), "tok-1", "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", doc.Username)
	require.NotNil(t, doc.Bio)
	assert.Equal(t, "hi", *doc.Bio)
}

func TestUpdateProfile_EncodesOnlySetFields(t *testing.T) {
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	bio := "new bio"
	c := NewClient(srv.URL, srv.Client())
	err := c.UpdateProfile(context.Background(), "tok-1", "uid-1", models.ProfileUpdate{Bio: &bio})
	require.NoError(t, err)

	assert.Contains(t, gotBody, "bio")
	assert.NotContains(t, gotBody, "username")
	assert.NotContains(t, gotBody, "email")
}

func TestDeleteAccount_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, nil)
	err := c.DeleteAccount(context.Background(), "tok-1", "uid-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuth)
	assert.NotErrorIs(t, err, ErrNotFound)
}
