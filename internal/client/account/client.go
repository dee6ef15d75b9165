// Package account implements the HTTP client for the account service
// consumed by the application.
package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/echoplay/echoplay/internal/models"
)

// ErrAuth indicates rejected credentials or a conflicting account.
var ErrAuth = errors.New("account: authentication failed")

// ErrNotFound indicates a missing user document.
var ErrNotFound = errors.New("account: not found")

const (
	apiSignUp  = "/api/signup"
	apiSignIn  = "/api/signin"
	apiSignOut = "/api/signout"
	apiUsers   = "/api/users/"
)

// Client talks to the account service. Every operation is a single
// round trip; there is no retry policy, a failed call is terminal for
// that operation.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient constructs an account Client for the given base URL.
// A nil httpClient falls back to a client with a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// authPayload mirrors the server's sign-up/sign-in response.
type authPayload struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// SignUp registers a new account and returns the signed-in user with
// its session token.
func (c *Client) SignUp(ctx context.Context, username, email, password string) (*models.UserDocument, string, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.auth(ctx, apiSignUp, body)
}

// SignIn authenticates with email and password and returns the user
// with its session token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.UserDocument, string, error) {
	body := map[string]string{"email": email, "password": password}
	return c.auth(ctx, apiSignIn, body)
}

func (c *Client) auth(ctx context.Context, path string, body map[string]string) (*models.UserDocument, string, error) {
	resp, err := c.do(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}

	var payload authPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("decode auth response: %w", err)
	}
	user := &models.UserDocument{
		UID:      payload.UID,
		Username: payload.Username,
		Email:    payload.Email,
	}
	return user, payload.Token, nil
}

// SignOut closes the session on the server. A transport or server
// failure is returned so the caller can log it, but the caller is
// expected to drop its local session either way.
func (c *Client) SignOut(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodPost, apiSignOut, token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// FetchProfile retrieves the profile document for uid.
func (c *Client) FetchProfile(ctx context.Context, token, uid string) (*models.UserDocument, error) {
	resp, err := c.do(ctx, http.MethodGet, apiUsers+uid, token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var doc models.UserDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &doc, nil
}

// UpdateProfile applies a partial update to the user's document.
func (c *Client) UpdateProfile(ctx context.Context, token, uid string, update models.ProfileUpdate) error {
	resp, err := c.do(ctx, http.MethodPatch, apiUsers+uid, token, update)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// DeleteAccount removes the account and all its server-side state.
func (c *Client) DeleteAccount(ctx context.Context, token, uid string) error {
	resp, err := c.do(ctx, http.MethodDelete, apiUsers+uid, token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("account request failed: %w", err)
	}
	return resp, nil
}

// checkStatus maps error statuses onto the client's error taxonomy.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(resp.Body)
	msg := strings.TrimSpace(string(data))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusConflict, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuth, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	default:
		return fmt.Errorf("account: server error %d: %s", resp.StatusCode, msg)
	}
}
