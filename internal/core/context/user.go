// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Role determines which console and routes a session may access.
type Role string

const (
	RoleEndUser          Role = "end_user"
	RoleHRAdmin          Role = "hr_admin"
	RoleAssociationAdmin Role = "association_admin"
	RoleSuperAdmin       Role = "super_admin"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEndUser, RoleHRAdmin, RoleAssociationAdmin, RoleSuperAdmin:
		return Role(s), true
	}
	return "", false
}

// UserContext contains authenticated user information.
type UserContext struct {
	UserID        string
	Email         string
	Role          Role
	CompanyID     string // empty unless the profile belongs to a company
	AssociationID string // empty unless the profile belongs to an association
	SessionID     string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// HasRole checks if the authenticated user has the given role.
func HasRole(ctx context.Context, role Role) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}

// GetCompanyID returns the company reference from context or empty string.
func GetCompanyID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.CompanyID
	}
	return ""
}

// GetAssociationID returns the association reference from context or empty string.
func GetAssociationID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.AssociationID
	}
	return ""
}
