// Package api is the HTTP client for the identity service. It attaches the
// stored bearer token to outgoing requests and keeps the session state in
// sync with login and logout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"identity-service/internal/client/session"
	apperrors "identity-service/pkg/errors"
)

// Client talks to the identity service API.
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
	state   *session.State
}

// New creates a Client for the API at baseURL.
func New(baseURL string, store session.Store, state *session.State) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		store:   store,
		state:   state,
	}
}

// do sends a JSON request, attaching the bearer token when one is stored.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if tok, err := c.store.Load(); err == nil && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	return c.http.Do(req)
}

// Login authenticates and stores the issued token, then refreshes the
// session state. Bad credentials surface as an AuthenticationError.
func (c *Client) Login(ctx context.Context, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":      email,
		"contraseña": password,
	})
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewAuthenticationError()
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if body.Token == "" {
		return apperrors.NewAuthenticationError()
	}

	if err := c.store.Save(body.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	c.state.Refresh()
	return nil
}

// Register creates a new account. A 400 response carries the server's error
// message.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"nombre":     name,
		"email":      email,
		"contraseña": password,
	})
	if err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("registration failed with status %d", resp.StatusCode)
	}
	return fmt.Errorf("registration failed: %s", body.Error)
}

// Logout removes the stored token and refreshes the session state.
func (c *Client) Logout() error {
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	c.state.Refresh()
	return nil
}

// Private calls the protected test endpoint. It succeeds only when the
// stored token passes server-side verification.
func (c *Client) Private(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/test/private", nil)
	if err != nil {
		return fmt.Errorf("private request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewAuthenticationError()
	}
	return nil
}
