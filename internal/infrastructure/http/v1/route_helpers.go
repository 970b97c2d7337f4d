package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appctx "volentia/internal/core/context"
	"volentia/internal/domain/gate"
	"volentia/internal/infrastructure/http/v1/middleware"
)

// RegisterConsoleGates registers the browser entry points of the three
// role consoles. Unlike the JSON API (401/403 via RequireRole), these
// routes redirect the visitor: to login when unauthenticated, to their
// own console home on a role mismatch.
func RegisterConsoleGates(router *gin.Engine, validator middleware.JWTValidator) {
	consoles := []struct {
		path string
		role appctx.Role
	}{
		{gate.HRPath, appctx.RoleHRAdmin},
		{gate.AssociationPath, appctx.RoleAssociationAdmin},
		{gate.AdminPath, appctx.RoleSuperAdmin},
	}

	for _, console := range consoles {
		policy := gate.ForRole(console.role)
		router.GET(console.path,
			middleware.OptionalAuth(validator),
			middleware.Gate(policy),
			consoleEntry(console.role),
		)
	}
}

// consoleEntry answers a gated console entry request. The SPA behind
// each console only needs to know which console it may mount.
func consoleEntry(role appctx.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"console": string(role)})
	}
}
