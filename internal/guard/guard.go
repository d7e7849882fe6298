// Package guard gates access to protected surfaces based on credential
// presence and, optionally, a role allow-list.
package guard

import (
	"slices"

	"rewearadmin/internal/session"
	"rewearadmin/internal/vault"
	v1 "rewearadmin/pkg/api/v1"
)

type Decision int

const (
	// DecisionRender grants access to the protected surface.
	DecisionRender Decision = iota
	// DecisionRedirectLogin sends the user to the login entry point.
	DecisionRedirectLogin
	// DecisionPlaceholder holds rendering while the role is still in
	// flight, avoiding a redirect flicker.
	DecisionPlaceholder
	// DecisionRedirectHome sends an authenticated user whose role is not on
	// the allow-list back to the default page.
	DecisionRedirectHome
)

func (d Decision) String() string {
	switch d {
	case DecisionRender:
		return "render"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionPlaceholder:
		return "placeholder"
	case DecisionRedirectHome:
		return "redirect-home"
	}
	return "unknown"
}

// Decide evaluates the guard for one navigation. The role session is only
// consulted once credentials are present. An empty allow-list means no role
// restriction, not deny-all.
func Decide(authenticated, loading bool, role v1.Role, allowed []v1.Role) Decision {
	if !authenticated {
		return DecisionRedirectLogin
	}
	if loading {
		return DecisionPlaceholder
	}
	if len(allowed) > 0 {
		if role == "" || !slices.Contains(allowed, role) {
			return DecisionRedirectHome
		}
	}
	return DecisionRender
}

// For reads the vault and session at call time and evaluates the guard.
func For(v *vault.Vault, s *session.Session, allowed []v1.Role) Decision {
	role, loading := s.Role()
	return Decide(v.Authenticated(), loading, role, allowed)
}
