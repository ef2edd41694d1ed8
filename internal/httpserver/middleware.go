package httpserver

import (
	"net/http"
	"strings"

	"storefront/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	tokenHeader    = "token"
	identityCtxKey = "identity"
)

// requireUser verifies the token sent either in the "token" header or as
// an Authorization bearer and stores the identity on the context.
func requireUser(v tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(tokenHeader)
		if raw == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if strings.TrimSpace(raw) == "" {
			fail(c, http.StatusUnauthorized, "not authorized, login again")
			c.Abort()
			return
		}
		identity, err := v.Verify(raw)
		if err != nil {
			fail(c, http.StatusUnauthorized, "not authorized, login again")
			c.Abort()
			return
		}
		c.Set(identityCtxKey, identity)
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identityFrom(c).Admin {
			fail(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) auth.Identity {
	v, ok := c.Get(identityCtxKey)
	if !ok {
		return auth.Identity{}
	}
	id, _ := v.(auth.Identity)
	return id
}
