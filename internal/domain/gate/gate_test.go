package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	appctx "volentia/internal/core/context"
)

func TestDecide_LoadingWaits(t *testing.T) {
	p := ForRole(appctx.RoleAssociationAdmin)

	d := p.Decide(Session{Loading: true}, "/association/experiences")

	assert.Equal(t, Wait, d.Outcome)
	assert.Empty(t, d.Destination)
}

func TestDecide_UnauthenticatedGoesToLoginWithReturn(t *testing.T) {
	p := ForRole(appctx.RoleAssociationAdmin)

	d := p.Decide(Session{}, "/association/experiences")

	assert.Equal(t, RedirectLogin, d.Outcome)
	assert.Equal(t, LoginPath, d.Destination)
	assert.Equal(t, "/association/experiences", d.ReturnTo)
}

func TestDecide_MatchingRoleAllows(t *testing.T) {
	p := ForRole(appctx.RoleAssociationAdmin)

	d := p.Decide(Session{Authenticated: true, Role: appctx.RoleAssociationAdmin}, "/association")

	assert.Equal(t, Allow, d.Outcome)
}

func TestDecide_WrongRoleRedirectsByActualRole(t *testing.T) {
	p := ForRole(appctx.RoleAssociationAdmin)

	tests := []struct {
		role appctx.Role
		want string
	}{
		{appctx.RoleHRAdmin, HRPath},
		{appctx.RoleSuperAdmin, AdminPath},
		{appctx.RoleEndUser, HomePath},
	}
	for _, tt := range tests {
		d := p.Decide(Session{Authenticated: true, Role: tt.role}, "/association")
		assert.Equal(t, Redirect, d.Outcome, "role %s", tt.role)
		assert.Equal(t, tt.want, d.Destination, "role %s", tt.role)
	}
}

func TestDecide_UnknownRoleFallsBackToHome(t *testing.T) {
	p := Policy{
		Required:  appctx.RoleSuperAdmin,
		Fallbacks: map[appctx.Role]string{},
		Login:     LoginPath,
		Home:      HomePath,
	}

	d := p.Decide(Session{Authenticated: true, Role: appctx.RoleHRAdmin}, "/admin")

	assert.Equal(t, Redirect, d.Outcome)
	assert.Equal(t, HomePath, d.Destination)
}
