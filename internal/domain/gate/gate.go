// Package gate decides whether a visitor may enter a role-specific console
// and where to send them otherwise. One policy, parameterized by required
// role and a role-to-destination fallback table, replaces per-role branch
// duplication.
package gate

import (
	appctx "volentia/internal/core/context"
)

// Session is the slice of the authentication/profile context the gate
// reads. The gate never mutates it.
type Session struct {
	// Loading is true while the session is still being resolved; no
	// redirect decision may be made yet.
	Loading bool

	// Authenticated reports whether a signed-in user is present.
	Authenticated bool

	// Role is the profile's role; meaningful only when Authenticated.
	Role appctx.Role
}

// Outcome classifies a gate decision.
type Outcome int

const (
	// Wait: session still loading, render a placeholder, decide later.
	Wait Outcome = iota
	// Allow: role matches, render the protected subtree unchanged.
	Allow
	// RedirectLogin: no authenticated user; send to login carrying the
	// originally requested location.
	RedirectLogin
	// Redirect: authenticated but wrong role; send to that role's home.
	Redirect
)

// Decision is the result of evaluating a Policy against a Session.
type Decision struct {
	Outcome Outcome

	// Destination is set for RedirectLogin and Redirect.
	Destination string

	// ReturnTo carries the originally requested location on RedirectLogin
	// so a successful login can send the visitor back.
	ReturnTo string
}

// Policy gates one console. Fallbacks maps an actual role to the home it
// is sent to when it does not match Required; roles absent from the table
// fall back to Home.
type Policy struct {
	Required  appctx.Role
	Fallbacks map[appctx.Role]string
	Login     string
	Home      string
}

// Decide evaluates the gate state machine for one navigation:
// Loading -> Authorized | Unauthenticated | WrongRole.
func (p Policy) Decide(sess Session, requested string) Decision {
	if sess.Loading {
		return Decision{Outcome: Wait}
	}
	if !sess.Authenticated {
		return Decision{Outcome: RedirectLogin, Destination: p.Login, ReturnTo: requested}
	}
	if sess.Role == p.Required {
		return Decision{Outcome: Allow}
	}
	dest, ok := p.Fallbacks[sess.Role]
	if !ok {
		dest = p.Home
	}
	return Decision{Outcome: Redirect, Destination: dest}
}

// Console destinations.
const (
	LoginPath       = "/login"
	HomePath        = "/"
	HRPath          = "/hr"
	AssociationPath = "/association"
	AdminPath       = "/admin"
)

// defaultFallbacks routes a mismatched role to its own console home.
func defaultFallbacks() map[appctx.Role]string {
	return map[appctx.Role]string{
		appctx.RoleSuperAdmin:       AdminPath,
		appctx.RoleHRAdmin:          HRPath,
		appctx.RoleAssociationAdmin: AssociationPath,
		appctx.RoleEndUser:          HomePath,
	}
}

// ForRole builds the standard policy guarding the console of the given role.
func ForRole(required appctx.Role) Policy {
	return Policy{
		Required:  required,
		Fallbacks: defaultFallbacks(),
		Login:     LoginPath,
		Home:      HomePath,
	}
}
