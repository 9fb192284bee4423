package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// WebSocketAuthMiddleware authenticates live feed connections from the token
// query parameter, since browsers cannot set headers on an upgrade.
//
// /ws/supplier needs a supplier token; the feed is scoped to its supplierId.
// /ws/staff needs the configured staff key, or is open when none is set.
func WebSocketAuthMiddleware(tokens utils.TokenStore, staffKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")

		switch c.Param("role") {
		case utils.RoleStaff:
			if staffKey != "" && subtle.ConstantTimeCompare([]byte(token), []byte(staffKey)) != 1 {
				abortStatus(c, http.StatusUnauthorized)
				return
			}
			c.Set(CtxRole, utils.RoleStaff)
			c.Set(CtxHandle, "")

		case utils.RoleSupplier:
			if token == "" {
				abortStatus(c, http.StatusUnauthorized)
				return
			}
			claims, ok := authenticate(c, tokens, token)
			if !ok {
				abortStatus(c, http.StatusUnauthorized)
				return
			}
			if claims.Role != utils.RoleSupplier {
				abortStatus(c, http.StatusForbidden)
				return
			}
			setClaims(c, token, claims)

		default:
			abortStatus(c, http.StatusNotFound)
			return
		}

		c.Next()
	}
}
