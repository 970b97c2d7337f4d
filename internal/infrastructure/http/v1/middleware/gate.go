package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	appctx "volentia/internal/core/context"
	"volentia/internal/domain/gate"
)

// Gate guards browser-facing console routes with a gate.Policy. Unlike
// RequireRole, which answers 401/403 for API clients, the gate redirects
// the visitor: to login when unauthenticated (carrying the requested
// location in return_to), or to their own console home on a role
// mismatch.
func Gate(policy gate.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := gate.Session{}
		if user := appctx.GetUser(c.Request.Context()); user != nil {
			sess.Authenticated = true
			sess.Role = user.Role
		}

		decision := policy.Decide(sess, c.Request.URL.RequestURI())
		switch decision.Outcome {
		case gate.Allow:
			c.Next()
		case gate.RedirectLogin:
			dest := decision.Destination
			if decision.ReturnTo != "" {
				dest += "?return_to=" + url.QueryEscape(decision.ReturnTo)
			}
			c.Redirect(http.StatusSeeOther, dest)
			c.Abort()
		default:
			c.Redirect(http.StatusSeeOther, decision.Destination)
			c.Abort()
		}
	}
}
