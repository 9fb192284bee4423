package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID      = "user_id"
	CtxRole        = "role"
	CtxHandle      = "handle"
	CtxToken       = "token"
	CtxTokenExpiry = "token_expiry"
)

// AuthMiddleware requires a valid, unrevoked bearer token.
func AuthMiddleware(tokens utils.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondAppError(c, utils.NewAuthError("authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondAppError(c, utils.NewAuthError("authorization header must use the Bearer scheme"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, ok := authenticate(c, tokens, tokenString)
		if !ok {
			utils.RespondAppError(c, utils.NewAuthError("invalid or expired token"))
			c.Abort()
			return
		}

		setClaims(c, tokenString, claims)
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens utils.TokenStore, tokenString string) (*utils.CustomClaims, bool) {
	claims, err := utils.ParseToken(tokenString)
	if err != nil || claims == nil {
		return nil, false
	}
	if tokens != nil {
		revoked, err := tokens.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			utils.ErrorLogger.Errorf("Token revocation lookup failed: %v", err)
			return nil, false
		}
		if revoked {
			return nil, false
		}
	}
	return claims, true
}

func setClaims(c *gin.Context, tokenString string, claims *utils.CustomClaims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxHandle, claims.Handle)
	c.Set(CtxToken, tokenString)
	if claims.ExpiresAt != nil {
		c.Set(CtxTokenExpiry, claims.ExpiresAt.Time)
	}
}

// abortStatus stops the chain without a body, for upgrade requests.
func abortStatus(c *gin.Context, code int) {
	c.AbortWithStatus(code)
	if code == http.StatusUnauthorized {
		utils.InfoLogger.Printf("Rejected unauthenticated %s %s", c.Request.Method, c.Request.URL.Path)
	}
}
