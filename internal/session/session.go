// Package session owns the resolved administrative role for the lifetime of
// the client process and reacts to the session-expired signal.
package session

import (
	"context"
	"errors"
	"sync"

	"rewearadmin/internal/gateway"
	"rewearadmin/internal/vault"
	v1 "rewearadmin/pkg/api/v1"
	"rewearadmin/pkg/logger"

	"go.uber.org/zap"
)

// State is the role-session lifecycle: Unresolved until the first resolve
// attempt settles, then Anonymous or Resolved.
type State int

const (
	StateUnresolved State = iota
	StateAnonymous
	StateResolved
)

// RoleFetcher resolves the current admin's role over the authenticated
// gateway.
type RoleFetcher interface {
	FetchRole(ctx context.Context) (v1.Role, error)
}

// Session is owned by the application root. Descendants read it and call its
// operations; they never mutate its state directly.
type Session struct {
	vault   *vault.Vault
	fetcher RoleFetcher

	mu    sync.Mutex
	state State
	role  v1.Role

	unsubscribe func()
}

// New subscribes the session to the expiry signal on bus. The session starts
// Unresolved; call Resolve to settle it.
func New(v *vault.Vault, fetcher RoleFetcher, bus *Bus) *Session {
	s := &Session{
		vault:   v,
		fetcher: fetcher,
		state:   StateUnresolved,
	}
	s.unsubscribe = bus.SubscribeExpiry(s.Invalidate)
	return s
}

// Resolve settles the session: Anonymous immediately when no credentials are
// held, otherwise the role is fetched through the gateway. Non-authorization
// failures leave the previous role in place and only settle the loading
// flag, so the caller can degrade instead of crash.
func (s *Session) Resolve(ctx context.Context) {
	if !s.vault.Authenticated() {
		s.toAnonymous()
		return
	}

	role, err := s.fetcher.FetchRole(ctx)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			// Credentials were already cleared by the gateway.
			s.toAnonymous()
			return
		}
		logger.Warn("session: role fetch failed, keeping previous state", zap.Error(err))
		s.settle()
		return
	}

	s.mu.Lock()
	s.state = StateResolved
	s.role = role
	s.mu.Unlock()
}

// Role returns the resolved role and whether resolution is still in flight.
// The role is empty unless the state is Resolved.
func (s *Session) Role() (v1.Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role, s.state == StateUnresolved
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Invalidate forces Anonymous without a network round trip. It is the expiry
// signal handler and is safe to call repeatedly or when already logged out.
func (s *Session) Invalidate() {
	s.toAnonymous()
}

// Logout clears stored credentials and invalidates the session locally.
func (s *Session) Logout() error {
	err := s.vault.Clear()
	s.toAnonymous()
	return err
}

// Close detaches the session from the signal bus. Production code never
// tears a session down; tests do.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *Session) toAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.role = ""
	s.mu.Unlock()
}

// settle flips Unresolved to Anonymous after a failed first resolve while
// preserving an already-resolved role on later refetch failures.
func (s *Session) settle() {
	s.mu.Lock()
	if s.state == StateUnresolved {
		s.state = StateAnonymous
	}
	s.mu.Unlock()
}
