package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appctx "volentia/internal/core/context"
	"volentia/internal/domain/gate"
)

// asUser injects an authenticated user into the request context, the way
// OptionalAuth does after validating a token.
func asUser(role appctx.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := &appctx.UserContext{UserID: "u-1", Role: role}
		c.Request = c.Request.WithContext(appctx.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

func gatedRouter(path string, required appctx.Role, pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append(pre, Gate(gate.ForRole(required)), func(c *gin.Context) {
		c.String(http.StatusOK, "console")
	})
	router.GET(path, chain...)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGate_UnauthenticatedRedirectsToLogin(t *testing.T) {
	router := gatedRouter(gate.HRPath, appctx.RoleHRAdmin)

	rec := get(router, gate.HRPath)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?return_to=%2Fhr", rec.Header().Get("Location"))
}

func TestGate_ReturnToCarriesQueryString(t *testing.T) {
	router := gatedRouter(gate.HRPath, appctx.RoleHRAdmin)

	rec := get(router, gate.HRPath+"?tab=codes")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?return_to=%2Fhr%3Ftab%3Dcodes", rec.Header().Get("Location"))
}

func TestGate_MatchingRoleAllowed(t *testing.T) {
	router := gatedRouter(gate.HRPath, appctx.RoleHRAdmin, asUser(appctx.RoleHRAdmin))

	rec := get(router, gate.HRPath)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console", rec.Body.String())
}

func TestGate_WrongRoleRedirectsToOwnConsole(t *testing.T) {
	tests := []struct {
		name     string
		role     appctx.Role
		wantDest string
	}{
		{name: "hr admin sent home to hr", role: appctx.RoleHRAdmin, wantDest: gate.HRPath},
		{name: "super admin sent to admin", role: appctx.RoleSuperAdmin, wantDest: gate.AdminPath},
		{name: "end user sent to landing", role: appctx.RoleEndUser, wantDest: gate.HomePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gatedRouter(gate.AssociationPath, appctx.RoleAssociationAdmin, asUser(tt.role))

			rec := get(router, gate.AssociationPath)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantDest, rec.Header().Get("Location"))
		})
	}
}
