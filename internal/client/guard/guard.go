// Package guard decides whether a protected location may be entered given
// the current session state.
package guard

import (
	"sync"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// StateReader is what the guard needs to know about the session.
type StateReader interface {
	IsAuthenticated() bool
	IsInitialized() bool
}

type Outcome int

const (
	// Pending means the session is still being resolved; show a neutral
	// loading state and do not redirect.
	Pending Outcome = iota
	// Redirect means the caller must send the user to RedirectTo.
	Redirect
	Allow
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decision is the result of Check. RedirectTo and From are set only for
// Redirect.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
	From       string
}

// Guard protects locations behind an authenticated session.
type Guard struct {
	state     StateReader
	loginPath string

	mu       sync.Mutex
	returnTo string
}

func New(state StateReader) *Guard {
	return &Guard{state: state, loginPath: common.LoginPath}
}

// Check evaluates the guard for requested. A Redirect remembers requested
// so TakeReturnTo can send the user back after logging in.
func (g *Guard) Check(requested string) Decision {
	if !g.state.IsInitialized() {
		return Decision{Outcome: Pending}
	}
	if !g.state.IsAuthenticated() {
		g.mu.Lock()
		g.returnTo = requested
		g.mu.Unlock()
		return Decision{Outcome: Redirect, RedirectTo: g.loginPath, From: requested}
	}
	return Decision{Outcome: Allow}
}

// TakeReturnTo returns and forgets the location of the last redirect.
func (g *Guard) TakeReturnTo() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	loc := g.returnTo
	g.returnTo = ""
	return loc, loc != ""
}
