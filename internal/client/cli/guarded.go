package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/storefront/internal/client/guard"
)

// Locations of the commands that need an account.
const (
	locationWhoAmI     = "/whoami"
	locationCartPush   = "/cart/push"
	locationRemoteCart = "/cart/remote"
)

var errLoginRequired = errors.New("login required")

// guarded runs the command registered for location once the guard allows
// it. While the session is being restored it waits; without a session it
// asks for a login first and then carries on with the same command. A
// failed login drops the command.
func (a *App) guarded(ctx context.Context, location string) error {
	for {
		d := a.guard.Check(location)
		switch d.Outcome {
		case guard.Allow:
			return a.protected[location](ctx)

		case guard.Pending:
			printlnFn("Checking session…")
			if err := a.session.Wait(ctx); err != nil {
				return err
			}

		case guard.Redirect:
			printlnFn("Please log in to continue.")
			err := a.login(ctx)
			// The command either runs now or not at all.
			a.guard.TakeReturnTo()
			if err != nil {
				return err
			}
			if !a.isLoggedIn() {
				return errLoginRequired
			}
		}
	}
}

// resume replays the command a guard redirected away from, if any.
func (a *App) resume(ctx context.Context) error {
	loc, ok := a.guard.TakeReturnTo()
	if !ok {
		return nil
	}
	fn, ok := a.protected[loc]
	if !ok {
		return nil
	}
	return fn(ctx)
}
