// Package admin implements the owner panel gate: one static password and a
// persisted logged-in flag. It is a placeholder, not a security boundary.
package admin

import (
	"sync"
	"time"
)

// DefaultErrorDisplay is how long a wrong-password indicator stays up
const DefaultErrorDisplay = 2 * time.Second

// Gate compares login attempts against a fixed password
type Gate struct {
	password     string
	errorDisplay time.Duration

	mu            sync.Mutex
	authenticated bool
	passwordError bool
	// attempt invalidates pending clear timers from earlier attempts
	attempt    uint64
	clearTimer *time.Timer
}

// NewGate creates a logged-out gate
func NewGate(password string, errorDisplay time.Duration) *Gate {
	if errorDisplay <= 0 {
		errorDisplay = DefaultErrorDisplay
	}
	return &Gate{
		password:     password,
		errorDisplay: errorDisplay,
	}
}

// Restore sets the logged-in flag read from storage
func (g *Gate) Restore(authenticated bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authenticated = authenticated
}

// Login checks input against the password. On a match the gate logs in and
// clears any error indicator; otherwise the indicator is raised and cleared
// again after the error display delay. LoggedIn sessions never expire.
func (g *Gate) Login(input string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.attempt++
	g.passwordError = false
	if g.clearTimer != nil {
		g.clearTimer.Stop()
		g.clearTimer = nil
	}

	if input == g.password {
		g.authenticated = true
		return true
	}

	g.passwordError = true
	attempt := g.attempt
	g.clearTimer = time.AfterFunc(g.errorDisplay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.attempt == attempt {
			g.passwordError = false
		}
	})
	return false
}

// Logout drops the logged-in flag
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authenticated = false
}

// Authenticated reports whether the owner is logged in
func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// PasswordError reports whether the wrong-password indicator is showing
func (g *Gate) PasswordError() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.passwordError
}

// Status is the gate state exposed to clients
type Status struct {
	Authenticated bool `json:"authenticated"`
	PasswordError bool `json:"passwordError"`
}

// Status returns both flags under one lock
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Status{Authenticated: g.authenticated, PasswordError: g.passwordError}
}
