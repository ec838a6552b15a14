package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for an email and password, creates the account and
// signs in with it. A command interrupted by a login prompt is resumed.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, email, password)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Account created, logged in as %s", u.Email))
	return a.resume(ctx)
}

// Login prompts for credentials and signs in. A command interrupted by a
// login prompt is resumed.
func (a *App) Login(ctx context.Context) error {
	if err := a.login(ctx); err != nil {
		return err
	}
	return a.resume(ctx)
}

func (a *App) login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Logged in as %s", u.Email))
	return nil
}

// Logout ends the session locally even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	return a.guarded(ctx, locationWhoAmI)
}

func (a *App) whoAmI(ctx context.Context) error {
	u, ok := a.authService.CurrentUser()
	if !ok {
		return errLoginRequired
	}
	printlnFn(fmt.Sprintf("Logged in as %s (id %d)", u.Email, u.ID))
	return nil
}
