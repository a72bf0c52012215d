package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/shared/server/respond"
)

const (
	usernameKey = "username"
	isAdminKey  = "isAdmin"
)

// Identity reads the caller identity from request headers and stores it in
// the gin context. Session management lives outside this service; upstream
// is trusted to have authenticated the user.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		username := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if username == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		c.Set(usernameKey, username)
		c.Set(isAdminKey, strings.EqualFold(strings.TrimSpace(c.GetHeader("X-Admin")), "true"))
		c.Next()
	}
}

// UsernameFromContext fetches the username set by the Identity middleware.
func UsernameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(usernameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}

// IsAdminFromContext reports whether the caller carries the admin flag.
func IsAdminFromContext(c *gin.Context) bool {
	if c == nil {
		return false
	}
	val, _ := c.Get(isAdminKey)
	admin, ok := val.(bool)
	return ok && admin
}
