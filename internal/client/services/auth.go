// Package services contains the application services of the storefront
// client: authentication, catalog browsing and the shopping cart.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// SessionManager is the part of session.Manager the services drive.
type SessionManager interface {
	Login(ctx context.Context, token string, user models.User)
	Logout(ctx context.Context)
	Snapshot() session.State
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register/Login: call the API and, on success, install the returned
//     session. API failures come back as *client.APIError.
//   - Logout: always ends the local session.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (*models.User, bool)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session SessionManager
}

// NewAuthService constructs an AuthService bound to the API client and the
// session manager.
func NewAuthService(client client.Client, session SessionManager) AuthService {
	return &authService{client: client, session: session}
}

func validateCredentials(email string, password []byte) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", common.ErrorInvalidInput)
	}
	if len(password) == 0 {
		return fmt.Errorf("%w: password is required", common.ErrorInvalidInput)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	resp, err := a.client.Register(ctx, strings.TrimSpace(email), string(password))
	if err != nil {
		return nil, err
	}
	a.session.Login(ctx, resp.AccessToken, resp.User)
	return &resp.User, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	resp, err := a.client.Login(ctx, strings.TrimSpace(email), string(password))
	if err != nil {
		return nil, err
	}
	a.session.Login(ctx, resp.AccessToken, resp.User)
	return &resp.User, nil
}

// Logout ends the session. Remote failures are absorbed by the session
// manager, so the error is always nil today.
func (a *authService) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	return nil
}

// CurrentUser returns the user of the active session.
func (a *authService) CurrentUser() (*models.User, bool) {
	st := a.session.Snapshot()
	if !st.IsAuthenticated() || st.User == nil {
		return nil, false
	}
	return st.User, true
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
