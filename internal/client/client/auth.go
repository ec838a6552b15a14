package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Register creates an account. The server answers with a session and sets
// the refresh cookie.
func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/register", models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		if resp.status == http.StatusConflict {
			return nil, &APIError{Status: resp.status, Message: "Email already exists", Err: ErrEmailExists}
		}
		return nil, &APIError{Status: resp.status, Message: orDefault(resp.text(), "Error registering")}
	}

	var out models.AuthResponse
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with email and password.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		if resp.status == http.StatusUnauthorized {
			return nil, &APIError{Status: resp.status, Message: orDefault(resp.text(), "Invalid credentials"), Err: ErrUnauthorized}
		}
		return nil, &APIError{Status: resp.status, Message: orDefault(resp.text(), "Login failed")}
	}

	var out models.AuthResponse
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh relies on the refresh cookie held by the jar; it sends no body.
func (c *HTTPClient) Refresh(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/refresh", nil)
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", &APIError{Status: resp.status, Message: "Session expired", Err: ErrSessionExpired}
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := resp.decode(&out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", &APIError{Status: resp.status, Message: "Session expired", Err: ErrSessionExpired}
	}
	return out.AccessToken, nil
}

// Logout asks the server to drop the refresh cookie.
func (c *HTTPClient) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(resp, orDefault(resp.text(), "Logout failed"))
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
